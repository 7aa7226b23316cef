package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/observability"
	"github.com/satriadwi28/kabarproject/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Google Drive serves the same file under several URL shapes and not every
// shape works for every file, so each one is tried in order.
var driveUrlFormats = []string{
	"https://drive.google.com/uc?export=view&id=%s",
	"https://drive.google.com/thumbnail?id=%s&sz=w1000",
	"https://lh3.googleusercontent.com/d/%s",
}

type ProxyController struct {
	Client *http.Client
	Log    *zap.Logger
}

func NewProxyController(zap *zap.Logger) *ProxyController {
	return &ProxyController{
		Client: &http.Client{Timeout: 15 * time.Second},
		Log:    zap,
	}
}

func (controller ProxyController) ProxyImage(ctx *fiber.Ctx) error {
	fileId := ctx.Query("id")
	if fileId == "" {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "File id is required to not be empty",
			Param:   "id",
		})
	}

	log := observability.WithContext(ctx.UserContext(), controller.Log)

	for _, format := range driveUrlFormats {
		url := fmt.Sprintf(format, fileId)

		body, contentType, ok := controller.fetchImage(ctx, url, log)
		if !ok {
			continue
		}

		ctx.Set("Content-Type", contentType)
		ctx.Set("Cache-Control", "public, max-age=86400")
		return ctx.Send(body)
	}

	return util.SendErrorResponseNotFound(ctx, &model.NotFoundError{
		Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
		Message: "Image not found",
		Param:   "id",
	})
}

func (controller ProxyController) fetchImage(ctx *fiber.Ctx, url string, log *zap.Logger) ([]byte, string, bool) {
	req, err := http.NewRequestWithContext(ctx.UserContext(), http.MethodGet, url, nil)
	if err != nil {
		log.Warn("failed to build proxy image request", zap.String("url", url), zap.Error(err))
		return nil, "", false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; kabarproject/1.0)")

	resp, err := controller.Client.Do(req)
	if err != nil {
		log.Warn("proxy image fetch failed", zap.String("url", url), zap.Error(err))
		return nil, "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", false
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, constant.MAX_FILE_SIZE))
	if err != nil {
		log.Warn("failed to read proxy image body", zap.String("url", url), zap.Error(err))
		return nil, "", false
	}

	return body, contentType, true
}
