package theme

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode reports an image that could not be opened or decoded.
	ErrDecode = errors.New("image decode failed")

	// ErrEmptyImage reports an image, or a channel sequence, with no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrChannelTask reports a failed per-channel reduction.
	ErrChannelTask = errors.New("channel task failed")
)

// ChannelTaskError describes the failure of one per-channel task.
type ChannelTaskError struct {
	Channel Channel
	Err     error
}

func (e *ChannelTaskError) Error() string {
	return fmt.Sprintf("%s channel: %v", e.Channel, e.Err)
}

func (e *ChannelTaskError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrChannelTask) match any ChannelTaskError.
func (e *ChannelTaskError) Is(target error) bool {
	return target == ErrChannelTask
}
