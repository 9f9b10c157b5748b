// Package cloudinary implementa el puerto ImageStore contra la API REST de
// Cloudinary (subida firmada). Solo lo usa el CRUD de productos; la colocación
// de pedidos nunca llega acá.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/pkg/config"
)

var _ ports.ImageStore = (*Uploader)(nil)

// Uploader cliente de subida de imágenes a Cloudinary.
type Uploader struct {
	cfg    config.CloudinaryConfig
	client *http.Client
}

// NewUploader construye el cliente con timeout propio (no bloquear requests
// del API por una subida lenta).
func NewUploader(cfg config.CloudinaryConfig) *Uploader {
	return &Uploader{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadProductImage sube la imagen firmada y devuelve la URL pública.
// El public_id incluye un UUID para no pisar subidas anteriores del mismo producto.
func (u *Uploader) UploadProductImage(ctx context.Context, productID int64, filename string, data []byte) (string, error) {
	if u.cfg.CloudName == "" || u.cfg.APIKey == "" || u.cfg.APISecret == "" {
		return "", fmt.Errorf("cloudinary: credenciales no configuradas")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	publicID := fmt.Sprintf("product_%d_%s", productID, uuid.New().String())
	params := map[string]string{
		"folder":    u.cfg.Folder,
		"public_id": publicID,
		"timestamp": timestamp,
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("cloudinary: preparar multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("cloudinary: escribir imagen: %w", err)
	}
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("cloudinary: escribir campo %s: %w", k, err)
		}
	}
	if err := w.WriteField("api_key", u.cfg.APIKey); err != nil {
		return "", fmt.Errorf("cloudinary: escribir api_key: %w", err)
	}
	if err := w.WriteField("signature", sign(params, u.cfg.APISecret)); err != nil {
		return "", fmt.Errorf("cloudinary: escribir firma: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("cloudinary: cerrar multipart: %w", err)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("cloudinary: crear request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary: subir imagen: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cloudinary: leer respuesta: %w", err)
	}
	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("cloudinary: respuesta inválida: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary: HTTP %d: %s", resp.StatusCode, out.Error.Message)
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	return out.URL, nil
}

// sign calcula la firma SHA-1 que exige Cloudinary: parámetros ordenados
// alfabéticamente, serializados k=v&... y concatenados con el api_secret.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
