package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"recipebox/internal/config"
	"recipebox/internal/models"
	"recipebox/internal/observability"
	"recipebox/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/recipebox/uploads/recipes"
	DefaultImageMaxUploadSizeMB = 10
	MasterMaxSize               = 2048
	JPEGQuality                 = 82
	WebPQuality                 = 70
)

type UploadRecipeImageInput struct {
	UserID      uint
	RecipeID    uint
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService validates and transcodes recipe images, storing a JPEG master
// plus a WebP sibling on disk and attaching the reference to the recipe.
type ImageService struct {
	recipeRepo         repository.RecipeRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewImageService(recipeRepo repository.RecipeRepository, cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		recipeRepo:         recipeRepo,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload attaches an image to the caller's recipe. The recipe is resolved
// through the owner-scoped query, so a foreign recipe surfaces as not found.
// Validation failures carry a field-level "image" entry and leave the recipe
// untouched.
func (s *ImageService) Upload(ctx context.Context, in UploadRecipeImageInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByIDForUser(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.validatePayload(in); err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewFieldValidationError("Validation failed",
			map[string]string{"image": "Invalid image file"})
	}
	if !isSupportedDecodedFormat(format) {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewFieldValidationError("Validation failed",
			map[string]string{"image": "Unsupported image format"})
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)

	masterJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	masterWebP, err := encodeWebP(master, WebPQuality)
	if err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	hash := buildImageHash(in.UserID, masterJPG)
	jpgRel := filepath.ToSlash(filepath.Join(hash, "master.jpg"))
	webpRel := filepath.ToSlash(filepath.Join(hash, "master.webp"))
	jpgAbs := filepath.Join(s.uploadDir, jpgRel)
	webpAbs := filepath.Join(s.uploadDir, webpRel)

	if err := writeBytesToFile(jpgAbs, masterJPG); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	if err := writeBytesToFile(webpAbs, masterWebP); err != nil {
		_ = os.Remove(jpgAbs)
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	recipe.ImagePath = jpgRel
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, err
	}

	observability.ImageUploads.WithLabelValues("accepted").Inc()
	return s.recipeRepo.GetByIDForUser(ctx, in.RecipeID, in.UserID)
}

func (s *ImageService) validatePayload(in UploadRecipeImageInput) error {
	if len(in.Content) == 0 {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"image": "No file uploaded"})
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"image": fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024))})
	}
	detected := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detected) {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"image": "Invalid image type"})
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, detected) {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"image": "Image content type mismatch"})
	}
	return nil
}

// BuildImageURL maps a stored image path to its public serving URL.
func (s *ImageService) BuildImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return "/media/recipes/" + imagePath
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

// buildImageHash keys stored files by owner and content so re-uploads of the
// same bytes by the same user land on the same path.
func buildImageHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
