// Package apierr defines the closed error taxonomy shared by every Premium API
// call and the per-client slot that records the outcome of the latest call.
//
// Codes originate in three places:
//
//   - the transport layer ([RequestFailed], [CannotMakeRequest],
//     [AttachmentsNotSupportedWithMethod]),
//   - local validation and response decoding ([MalformedAttachmentList],
//     [AttachmentFileNotReadable], [EmptyResponse], [InvalidResponse]),
//   - the service itself, which reports business errors in the ErrNo field of
//     an otherwise well-formed response. Those are copied through unchanged.
//
// # Usage
//
//	payload, err := c.MessagesGet(ctx, 42)
//	if errors.Is(err, apierr.ErrNoDataFound) {
//	    // message does not exist
//	}
//
// The numbering matches the service's so that business codes need no mapping.
package apierr
