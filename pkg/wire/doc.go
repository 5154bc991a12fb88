// Package wire turns Premium API calls into bytes and bytes back into
// structured responses, independently of how the bytes travel.
//
// It has three parts:
//
//   - [Encode] builds an outgoing [Request] from a [RequestSpec]: GET when
//     there is nothing to send, a URL-encoded form otherwise, and a
//     multipart body once files are attached.
//   - [ParseBlock] and [ParseLines] decode raw status and header text into a
//     [Response], following redirect chains to the final status block.
//   - [ValidateAttachments] checks a file list before any I/O happens.
//
// [Headers] keeps insertion order and compares names case-insensitively, which
// is what both the outgoing header assembly and the parser rely on.
package wire
