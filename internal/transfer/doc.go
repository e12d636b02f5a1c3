// Package transfer places finished MP3s at their destination.
//
// The orchestrator only sees the Placer interface; the two
// implementations cover the local music folder and a remote host:
//
//   - LocalPlacer copies into <music_folder>/<destination>/, creating
//     directories as needed.
//   - SCPPlacer transfers over scp using a configured identity, the way
//     a headless media server is usually fed.
//
// SCPPlacer copies the file to a simple temporary name before invoking
// scp: track titles routinely contain characters that survive filename
// sanitization but still confuse remote shells.
package transfer
