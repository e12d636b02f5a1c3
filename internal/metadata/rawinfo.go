package metadata

import (
	"encoding/json"
	"strings"
)

// UploadDate holds yt-dlp's upload_date field, an 8-digit YYYYMMDD value.
// Some extractors emit it as a JSON string, others as a bare number, so
// it unmarshals from either and keeps the digits as a string.
type UploadDate struct {
	Raw string
}

// UnmarshalJSON accepts "20230515", 20230515 or null.
func (d *UploadDate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		d.Raw = ""
		return nil
	}

	if s != "" && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		d.Raw = str
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	d.Raw = num.String()
	return nil
}

// Thumbnail is one cover candidate offered by the source.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RawInfo is the deserialized per-item metadata record from yt-dlp's
// info JSON. Every field is optional; Normalize defends against all of
// them being missing.
type RawInfo struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Uploader      string      `json:"uploader"`
	Channel       string      `json:"channel"`
	Description   string      `json:"description"`
	UploadDate    *UploadDate `json:"upload_date"`
	Playlist      string      `json:"playlist"`
	PlaylistTitle string      `json:"playlist_title"`
	PlaylistIndex *int        `json:"playlist_index"`
	Categories    []string    `json:"categories"`
	Tags          []string    `json:"tags"`
	ViewCount     *int64      `json:"view_count"`
	LikeCount     *int64      `json:"like_count"`
	Duration      float64     `json:"duration"`
	Thumbnails    []Thumbnail `json:"thumbnails"`
	WebpageURL    string      `json:"webpage_url"`
}

// ParseRawInfo deserializes one yt-dlp info JSON document.
func ParseRawInfo(data []byte) (*RawInfo, error) {
	var info RawInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
