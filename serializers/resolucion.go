package serializers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/services/storage"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"github.com/facet-unt/departamentos-api/utils/pdfvalidation"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// ResolucionPrefix is the media folder of resolucion attachments.
const ResolucionPrefix = "resoluciones"

// ResolucionInput is the write side of a resolucion. It binds JSON bodies and
// multipart forms carrying the adjunto PDF.
type ResolucionInput struct {
	Nexpediente   string       `json:"nexpediente" form:"nexpediente" validate:"required,max=50"`
	Nresolucion   string       `json:"nresolucion" form:"nresolucion" validate:"required,max=50"`
	Tipo          string       `json:"tipo" form:"tipo" validate:"required,oneof=Rector Decano Consejo_Superior Consejo_Directivo"`
	Fecha         *Timestamp   `json:"fecha" form:"fecha"`
	Observaciones string       `json:"observaciones" form:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" form:"estado" validate:"omitempty,oneof=0 1"`

	storage  storage.Storage
	file     *multipart.FileHeader
	pdf      *pdfvalidation.ValidationResult
	bindErrs validation.Errors
	uploaded string
	stale    string
}

// NewResolucionInput returns the input constructor bound to the media storage.
func NewResolucionInput(st storage.Storage) func() *ResolucionInput {
	return func() *ResolucionInput {
		return &ResolucionInput{storage: st}
	}
}

func (in *ResolucionInput) Load(m *model.Resolucion) {
	in.Nexpediente = m.Nexpediente
	in.Nresolucion = m.Nresolucion
	in.Tipo = m.Tipo
	in.Fecha = NewTimestamp(m.Fecha)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
}

// Bind decodes the request. Multipart forms only overwrite the keys they carry.
func (in *ResolucionInput) Bind(c *fiber.Ctx) error {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if len(c.Body()) == 0 {
			return nil
		}
		return c.BodyParser(in)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fmt.Errorf("failed to parse multipart form: %w", err)
	}
	in.bindErrs = validation.Errors{}

	set := func(key string, dst *string) {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			*dst = v[0]
		}
	}
	set("nexpediente", &in.Nexpediente)
	set("nresolucion", &in.Nresolucion)
	set("tipo", &in.Tipo)
	set("observaciones", &in.Observaciones)

	if v, ok := form.Value["estado"]; ok && len(v) > 0 {
		in.Estado = model.Estado(strings.TrimSpace(v[0]))
	}
	if v, ok := form.Value["fecha"]; ok && len(v) > 0 {
		ts := &Timestamp{}
		if err := ts.UnmarshalText([]byte(v[0])); err != nil {
			in.bindErrs.Add("fecha", err.Error())
		}
		in.Fecha = ts
	}
	if files := form.File["adjunto"]; len(files) > 0 {
		in.file = files[0]
	}
	return nil
}

func (in *ResolucionInput) Validate(_ *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	errs.Merge(in.bindErrs)
	if in.file == nil {
		return errs
	}

	result, err := pdfvalidation.ValidatePDFFile(in.file, pdfvalidation.ResolucionLimits)
	switch {
	case errors.Is(err, pdfvalidation.ErrInvalidPDF):
		errs.Add("adjunto", pdfvalidation.Message(err))
	case err != nil:
		errs.Add("adjunto", "The submitted data was not a file. Check the encoding type on the form.")
	default:
		in.pdf = result
	}
	return errs
}

// Prepare uploads the validated attachment.
func (in *ResolucionInput) Prepare(ctx context.Context) error {
	if in.pdf == nil {
		return nil
	}
	if in.storage == nil {
		return errors.New("media storage is not configured")
	}

	key := storage.GenerateKey(ResolucionPrefix, in.file.Filename)
	url, err := in.storage.Save(ctx, key, bytes.NewReader(in.pdf.Content), "application/pdf")
	if err != nil {
		return fmt.Errorf("failed to store adjunto: %w", err)
	}
	in.uploaded = url
	return nil
}

func (in *ResolucionInput) Apply(m *model.Resolucion) {
	m.Nexpediente = validation.SanitizeString(in.Nexpediente)
	m.Nresolucion = validation.SanitizeString(in.Nresolucion)
	m.Tipo = in.Tipo
	m.Fecha = in.Fecha.Ptr()
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
	if in.uploaded != "" {
		if m.Adjunto != in.uploaded {
			in.stale = m.Adjunto
		}
		m.Adjunto = in.uploaded
	}
}

// Commit removes the attachment replaced by a new upload.
func (in *ResolucionInput) Commit(ctx context.Context) {
	if in.stale == "" || in.storage == nil {
		return
	}
	if err := DeleteAdjunto(ctx, in.storage, in.stale); err != nil {
		logger.L().Warn("failed to delete replaced adjunto", zap.String("adjunto", in.stale), zap.Error(err))
	}
}

// Rollback removes an attachment uploaded for a record that was not saved.
func (in *ResolucionInput) Rollback(ctx context.Context) {
	if in.uploaded == "" || in.storage == nil {
		return
	}
	if err := DeleteAdjunto(ctx, in.storage, in.uploaded); err != nil {
		logger.L().Warn("failed to delete orphaned adjunto", zap.String("adjunto", in.uploaded), zap.Error(err))
	}
	in.uploaded = ""
}

// DeleteAdjunto removes the media file behind url. Unknown URLs are ignored.
func DeleteAdjunto(ctx context.Context, st storage.Storage, url string) error {
	if url == "" {
		return nil
	}
	key, ok := st.KeyFromURL(url)
	if !ok {
		return nil
	}
	return st.Delete(ctx, key)
}

// ResolucionOutput is the wire shape of a resolucion
type ResolucionOutput struct {
	ID            uint         `json:"id"`
	Nexpediente   string       `json:"nexpediente"`
	Nresolucion   string       `json:"nresolucion"`
	Tipo          string       `json:"tipo"`
	FechaCreacion time.Time    `json:"fecha_creacion"`
	Fecha         *Timestamp   `json:"fecha"`
	Adjunto       *string      `json:"adjunto"`
	Observaciones string       `json:"observaciones"`
	Estado        model.Estado `json:"estado"`
}

func NewResolucion(m *model.Resolucion) *ResolucionOutput {
	if m == nil {
		return nil
	}
	out := &ResolucionOutput{
		ID:            m.ID,
		Nexpediente:   m.Nexpediente,
		Nresolucion:   m.Nresolucion,
		Tipo:          m.Tipo,
		FechaCreacion: m.FechaCreacion,
		Fecha:         NewTimestamp(m.Fecha),
		Observaciones: m.Observaciones,
		Estado:        m.Estado,
	}
	if m.Adjunto != "" {
		adjunto := m.Adjunto
		out.Adjunto = &adjunto
	}
	return out
}
