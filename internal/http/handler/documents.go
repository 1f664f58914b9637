package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service"
)

// DownloadNamePrefix is prepended to the stored name in the attachment header.
const DownloadNamePrefix = "documento_cientifico_"

type generateWordResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type generateLatexResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Message  string `json:"message"`
}

type cleanupResponse struct {
	Success bool   `json:"success"`
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func parseGenerationRequest(c *fiber.Ctx) (model.GenerationRequest, error) {
	var req model.GenerationRequest
	err := c.BodyParser(&req)
	return req, err
}

// GenerateWord godoc
// @Summary Generate a Word document
// @Tags documents
// @Accept json
// @Produce json
// @Param request body model.GenerationRequest true "titulo, contenido, autor"
// @Success 200 {object} generateWordResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/generar-word [post]
func GenerateWord(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseGenerationRequest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		f, err := docSvc.GenerateWord(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(generateWordResponse{
			Success:  true,
			Filename: f.Filename,
			Message:  "Documento Word generado exitosamente",
		})
	}
}

// GenerateLatex godoc
// @Summary Generate LaTeX source
// @Tags documents
// @Accept json
// @Produce json
// @Param request body model.GenerationRequest true "titulo, contenido, autor"
// @Success 200 {object} generateLatexResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/generar-latex [post]
func GenerateLatex(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseGenerationRequest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		res, err := docSvc.GenerateLatex(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(generateLatexResponse{
			Success:  true,
			Filename: res.File.Filename,
			Content:  res.Content,
			Message:  "Código LaTeX generado exitosamente",
		})
	}
}

// DownloadDocument godoc
// @Summary Download a generated file
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Produce application/x-tex
// @Param filename path string true "stored filename"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /api/descargar/{filename} [get]
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := docSvc.Download(c.UserContext(), c.Params("filename"))
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s%s"`, DownloadNamePrefix, res.File.Filename))
		c.Set(fiber.HeaderContentType, res.File.ContentType)
		return c.Status(fiber.StatusOK).Send(res.Data)
	}
}

// CleanupTemp godoc
// @Summary Delete generated files older than the TTL
// @Tags maintenance
// @Produce json
// @Param max_age query int false "positive age threshold in seconds, defaults to FILE_TTL_SEC"
// @Success 200 {object} cleanupResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/limpiar-temp [get]
func CleanupTemp(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var maxAge time.Duration
		if v := c.Query("max_age"); v != "" {
			sec, err := strconv.Atoi(v)
			if err != nil || sec <= 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_MAX_AGE", "invalid max_age")
			}
			maxAge = time.Duration(sec) * time.Second
		}

		deleted, err := docSvc.Cleanup(c.UserContext(), maxAge)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cleanupResponse{
			Success: true,
			Deleted: deleted,
			Message: fmt.Sprintf("Se eliminaron %d archivos temporales", deleted),
		})
	}
}

// DeleteDocument godoc
// @Summary Delete a generated file
// @Tags documents
// @Produce json
// @Param filename path string true "stored filename"
// @Success 200 {object} deleteResponse
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/documentos/{filename} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := docSvc.Delete(c.UserContext(), c.Params("filename")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(deleteResponse{Success: true, Message: "Documento eliminado"})
	}
}

// ListDocuments godoc
// @Summary List generated files, newest first
// @Tags documents
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.FileListResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/documentos [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
