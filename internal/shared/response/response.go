package response

import (
	"net/http"
	"strconv"

	"obracheck/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ListMeta describes a list that the server truncates at Limit instead of
// paging it. Truncated is true when more rows may exist.
type ListMeta struct {
	Count     int  `json:"count"`
	Limit     int  `json:"limit,omitempty"`
	Truncated bool `json:"truncated,omitempty"`
}

func NewListMeta(count, limit int) ListMeta {
	return ListMeta{
		Count:     count,
		Limit:     limit,
		Truncated: limit > 0 && count >= limit,
	}
}

type ApiEnvelope struct {
	Ok    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Meta  *ListMeta `json:"meta,omitempty"`
	Error any       `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *ListMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes any service error through apperror.ToHTTP.
func FromError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Attachment sends body as a download. Files are not wrapped in the envelope.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.Header("Content-Length", strconv.Itoa(len(body)))
	c.Data(http.StatusOK, contentType, body)
}
