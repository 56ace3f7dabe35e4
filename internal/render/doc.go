// Package render turns a selected batch of catalog items into a vertical
// video.
//
// Slides are composed as raster images (title card, per-item cover with
// banner and description overlay, outro card), narrated through the tts
// service, and assembled with ffmpeg: each slide becomes a clip over the
// looping background, and the clips are joined with the concat demuxer.
//
// Failures inside a single slide (cover lookup, narration) degrade to
// placeholder art or silence. A failed ffmpeg invocation is a render failure
// that must prevent the ledger commit.
package render
