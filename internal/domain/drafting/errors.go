package drafting

import "errors"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrEmptyTemplate    = errors.New("template body is empty")
	ErrEmptyContract    = errors.New("contract text is empty")
	ErrEmptyRequest     = errors.New("modification request is empty")
	ErrInvalidTemplate  = errors.New("model returned an invalid template")
	ErrInvalidName      = errors.New("invalid template name")
)
