package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dominio-lash/lumiere-api/internal/config"
	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/httperr"
	"github.com/dominio-lash/lumiere-api/internal/httpresp"
	"github.com/dominio-lash/lumiere-api/internal/imaging"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	"github.com/dominio-lash/lumiere-api/internal/models"
	"github.com/dominio-lash/lumiere-api/internal/photostore"
)

type ClientHandler struct {
	store  docstore.Store
	facade *facade.Facade
	photos photostore.Storage
	config *config.Config
}

func NewClientHandler(store docstore.Store, fc *facade.Facade, photos photostore.Storage, cfg *config.Config) *ClientHandler {
	return &ClientHandler{store: store, facade: fc, photos: photos, config: cfg}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	clients, err := loadClients(c.Request.Context(), h.store, profile.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if query != "" {
		filtered := clients[:0]
		for _, cl := range clients {
			if strings.Contains(strings.ToLower(cl.Name), query) ||
				strings.Contains(cl.Phone, query) ||
				strings.Contains(strings.ToLower(cl.Email), query) {
				filtered = append(filtered, cl)
			}
		}
		clients = filtered
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE / UPDATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var cl models.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	created, err := h.facade.AddClient(c.Request.Context(), profile, cl)
	if err != nil {
		writeMutationError(c, err)
		return
	}

	httpresp.Created(c, created)
}

func (h *ClientHandler) Update(c *gin.Context) {
	profile := middleware.ProfileFrom(c)
	id := c.Param("id")

	var patch models.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if err := h.facade.UpdateClient(c.Request.Context(), profile, id, patch); err != nil {
		writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// FOTO DE PERFIL
// ======================================================

// UploadPhoto comprime a imagem enviada; se couber no teto do
// documento ela fica inline (data URL), senão sobe para o bucket e o
// documento guarda só a URL.
func (h *ClientHandler) UploadPhoto(c *gin.Context) {
	profile := middleware.ProfileFrom(c)
	id := c.Param("id")

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Nenhuma foto enviada.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erro ao ler a foto enviada.")
		return
	}

	dataURL, err := imaging.CompressToDataURL(data, h.config.ImageMaxWidth, h.config.JPEGQuality)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "O arquivo enviado não é uma imagem válida.")
		return
	}

	photoURL := dataURL
	if !imaging.FitsBudget(dataURL, h.config.MaxDocumentBytes) {
		if h.photos == nil {
			httperr.BadRequest(c, "payload_too_large",
				"A foto comprimida ainda excede o limite do documento.")
			return
		}

		compressed, err := imaging.DecodeDataURL(dataURL)
		if err != nil {
			httperr.Internal(c, "failed_to_process_photo", "Erro ao processar a foto.")
			return
		}

		key := fmt.Sprintf("photos/%s/%s/%s.jpg", profile.Email, id, uuid.NewString())
		photoURL, err = h.photos.Upload(c.Request.Context(), key, compressed, "image/jpeg")
		if err != nil {
			httperr.Internal(c, "failed_to_store_photo", "Erro ao armazenar a foto.")
			return
		}
	}

	patch := models.ClientPatch{PhotoURL: &photoURL}
	if err := h.facade.UpdateClient(c.Request.Context(), profile, id, patch); err != nil {
		writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photoUrl": photoURL})
}
