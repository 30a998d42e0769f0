package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"resumelens/internal/errors"
	"resumelens/internal/textmetrics"
	"resumelens/internal/utils"
)

// Document is a piece of input text and where it came from
type Document struct {
	Source string
	Text   string
}

// StdinSource names documents read from standard input.
const StdinSource = "<stdin>"

// FileProcessor handles common file operations
type FileProcessor struct {
	logger      *errors.Logger
	maxFileSize int64
}

// NewFileProcessor creates a new file processor. maxFileSize of zero means no limit.
func NewFileProcessor(logger *errors.Logger, maxFileSize int64) *FileProcessor {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &FileProcessor{logger: logger, maxFileSize: maxFileSize}
}

// ReadFile reads content from a file with proper error handling
func (fp *FileProcessor) ReadFile(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
		}
	}()

	return fp.readLimited(file, filename)
}

// ReadStdin reads a whole document from r, applying the same size and
// encoding checks as files.
func (fp *FileProcessor) ReadStdin(r io.Reader) (string, error) {
	return fp.readLimited(r, StdinSource)
}

func (fp *FileProcessor) readLimited(r io.Reader, source string) (string, error) {
	if fp.maxFileSize > 0 {
		r = io.LimitReader(r, fp.maxFileSize+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read content: %s", source), err)
	}

	if fp.maxFileSize > 0 && int64(len(content)) > fp.maxFileSize {
		return "", errors.NewIOError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("%s exceeds the %s limit", source, utils.FormatFileSize(fp.maxFileSize)), nil)
	}

	if !utf8.Valid(content) {
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("%s is not valid UTF-8 text", source), nil)
	}

	return string(content), nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError(errors.ErrCodeFileNotWritable,
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ExpandInputs resolves file arguments and an optional doublestar pattern
// into a sorted, de-duplicated list of paths. Arguments that contain glob
// metacharacters are expanded too.
func (fp *FileProcessor) ExpandInputs(args []string, pattern string) ([]string, error) {
	var paths []string

	patterns := make([]string, 0, len(args)+1)
	for _, arg := range args {
		if hasMeta(arg) {
			patterns = append(patterns, arg)
			continue
		}
		paths = append(paths, arg)
	}
	if pattern != "" {
		patterns = append(patterns, pattern)
	}

	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidArgument,
				fmt.Sprintf("Invalid glob pattern: %s", p), nil)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Cannot expand glob pattern: %s", p), err)
		}
		if len(matches) == 0 {
			fp.logger.Warn("Glob pattern matched no files", "pattern", p)
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// ValidateAndReadFiles validates and reads multiple input files
func (fp *FileProcessor) ValidateAndReadFiles(filenames ...string) ([]string, error) {
	contents := make([]string, len(filenames))

	for i, filename := range filenames {
		if err := utils.ValidateInputFile(filename, fp.maxFileSize); err != nil {
			code := errors.ErrCodeFileNotReadable
			if info, statErr := os.Stat(filename); statErr == nil && fp.maxFileSize > 0 && info.Size() > fp.maxFileSize {
				code = errors.ErrCodeFileTooLarge
			} else if os.IsNotExist(statErr) {
				code = errors.ErrCodeFileNotFound
			}
			return nil, errors.NewIOError(code, fmt.Sprintf("Invalid file %s", filename), err)
		}

		if !utils.IsTextFile(filename) {
			fp.logger.Warn("File may not be a text file", "filename", filename)
		}

		content, err := fp.ReadFile(filename)
		if err != nil {
			return nil, err // Error already wrapped by ReadFile
		}

		contents[i] = content
	}

	return contents, nil
}

// ReadDocuments reads every file into a Document. Markdown files, or every
// file when stripMarkdown is set, are reduced to plain text first.
func (fp *FileProcessor) ReadDocuments(filenames []string, stripMarkdown bool) ([]Document, error) {
	contents, err := fp.ValidateAndReadFiles(filenames...)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(filenames))
	for i, filename := range filenames {
		text := contents[i]
		if stripMarkdown || utils.IsMarkdownFile(filename) {
			text = textmetrics.PlainText([]byte(text))
		}
		docs[i] = Document{Source: filename, Text: text}
	}
	return docs, nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidArgument,
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
