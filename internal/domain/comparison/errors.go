package comparison

import "errors"

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrJobNotCompleted    = errors.New("job not completed yet")
	ErrReportNotFound     = errors.New("report file not found")
	ErrDataNotFound       = errors.New("comparison data not found")
	ErrNotEnoughContracts = errors.New("at least 2 contracts are required for comparison")
	ErrTooManyContracts   = errors.New("maximum 10 contracts are supported for comparison")
	ErrMalformedOutput    = errors.New("llm output is not a recognized list of differences")
	ErrExtractionFailed   = errors.New("could not extract text from enough contracts")
	ErrEmptyContract      = errors.New("contract text is empty")
	ErrPDFUnavailable     = errors.New("pdf rendering is not enabled")
)
