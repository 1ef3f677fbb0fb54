package domain

import "errors"

// File import failures. Unsupported types are a client error (400); a
// document that cannot be parsed is a processing error (500).
var ErrUnsupportedFileType = errors.New("unsupported file type")
var ErrFileProcessing = errors.New("failed to process file")
