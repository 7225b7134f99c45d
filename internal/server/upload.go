package server

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fluentpal/analysis-gateway/internal/observability"
)

// audioFieldNames are the multipart field names clients have shipped
// with; all are accepted for compatibility.
var audioFieldNames = []string{"file", "audioFile", "audio"}

// uploadError carries a validation failure with its structured code
type uploadError struct {
	message string
	code    string
}

func (e *uploadError) Error() string { return e.message }

// receiveAudio validates the uploaded audio and saves it to a temp
// file. Validation happens before any byte of analysis: missing field,
// extension outside the allow-list, and oversized uploads are all
// rejected here. The caller owns the returned path and must remove it
// on every exit.
func (s *Server) receiveAudio(c *gin.Context) (string, *uploadError) {
	var file *multipart.FileHeader
	for _, field := range audioFieldNames {
		if f, err := c.FormFile(field); err == nil {
			file = f
			break
		}
	}
	if file == nil {
		observability.RecordUploadRejection(CodeMissingField)
		return "", &uploadError{message: "Missing required field: audioFile", code: CodeMissingField}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !s.allowedExtensions[ext] {
		observability.RecordUploadRejection(CodeInvalidFormat)
		return "", &uploadError{
			message: "Invalid format. Supported: WAV, M4A, MP3, WEBM",
			code:    CodeInvalidFormat,
		}
	}

	if file.Size > s.maxUploadBytes {
		observability.RecordUploadRejection(CodeFileTooLarge)
		return "", &uploadError{message: "File too large", code: CodeFileTooLarge}
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("clip-%s.%s", uuid.NewString(), ext))
	if err := c.SaveUploadedFile(file, path); err != nil {
		logger := observability.GetLogger()
		logger.Error().Err(err).Msg("Failed to save upload")
		return "", &uploadError{message: "Failed to store upload", code: CodeAnalysisFailed}
	}
	return path, nil
}
