package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/storage"
)

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой изображений событий.
type MediaHandler struct {
	storage *storage.MediaStorage
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(storage *storage.MediaStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// Upload обрабатывает POST /media/images.
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}
	if file.Size > h.storage.MaxUploadBytes() {
		common.RespondError(c, http.StatusRequestEntityTooLarge, "файл превышает допустимый размер")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c, fmt.Sprintf(
			"неподдерживаемый формат файла. Разрешены: %s", strings.Join(extensionList(), ", ")))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "не удалось прочитать файл")
		return
	}
	defer src.Close()

	// Тип определяется по магическим байтам, расширению не доверяем.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		common.RespondError(c, http.StatusInternalServerError, "не удалось прочитать файл")
		return
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || !allowedMimeTypes[kind.MIME.Value] {
		common.RespondBadRequest(c, "содержимое файла не является изображением")
		return
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "не удалось прочитать файл")
		return
	}

	path, size, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "не удалось сохранить файл")
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{Path: path, Size: size})
}

func extensionList() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
