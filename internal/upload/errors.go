package upload

import "errors"

var (
	// ErrMissingFile signals a request without a file payload.
	ErrMissingFile = errors.New("file is required")
	// ErrMissingTributeFields signals a tribute without a name or story.
	ErrMissingTributeFields = errors.New("name and story are required")
	// ErrUnsupportedMedia signals a payload that is neither an image nor a video.
	ErrUnsupportedMedia = errors.New("only image and video uploads are supported")
	// ErrFileTooLarge signals that the upload exceeds configured limits.
	ErrFileTooLarge = errors.New("file too large")
	// ErrTagsTooLarge signals tags that would not fit in object metadata.
	ErrTagsTooLarge = errors.New("tags too large")
)

// IsClientError reports whether err was caused by the request rather than the store.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrMissingTributeFields) ||
		errors.Is(err, ErrUnsupportedMedia) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrTagsTooLarge)
}
