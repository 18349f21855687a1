package service

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"investigacion/internal/apierror"
	"investigacion/internal/infra"

	"github.com/rs/zerolog/log"
)

var (
	dataURLPrefix  = regexp.MustCompile(`^data:[^;,]*;base64,`)
	base64Alfabeto = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
	firmaPDF       = []byte("%PDF")
)

const extensionDocumento = ".pdf"

// DocumentoGuardado is the result of storing one decoded document.
type DocumentoGuardado struct {
	Nombre    string // generated, unique
	Ubicacion string // disk path or object URL, driver-dependent
}

// DocumentoService decodes base64 payloads and persists them in the blob store.
type DocumentoService interface {
	Guardar(ctx context.Context, contenidoBase64, nombreDeclarado string) (*DocumentoGuardado, error)
	Eliminar(ctx context.Context, nombre string) error
	// URL is the public path of a stored document, empty when not served.
	URL(nombre string) string
}

type documentoService struct {
	blob      infra.Blob
	publicURL string
	now       func() time.Time
}

// NewDocumentoService stores through blob. publicURL is the prefix documents
// are served under (e.g. "/uploads/"); empty disables DocURL.
func NewDocumentoService(blob infra.Blob, publicURL string) DocumentoService {
	return &documentoService{blob: blob, publicURL: publicURL, now: time.Now}
}

func (s *documentoService) Guardar(ctx context.Context, contenido, nombreDeclarado string) (*DocumentoGuardado, error) {
	data, err := decodificarBase64(contenido)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, firmaPDF) {
		log.Warn().Str("nombre", nombreDeclarado).Msg("documento: el contenido no parece un PDF")
	}

	nombre := s.nombreUnico(nombreDeclarado)
	ubicacion, err := s.blob.Put(ctx, nombre, data, "application/pdf")
	if err != nil {
		return nil, apierror.Interno("Error al guardar el documento", err)
	}
	return &DocumentoGuardado{Nombre: nombre, Ubicacion: ubicacion}, nil
}

func (s *documentoService) Eliminar(ctx context.Context, nombre string) error {
	if nombre == "" {
		return nil
	}
	return s.blob.Delete(ctx, nombre)
}

func (s *documentoService) URL(nombre string) string {
	if s.publicURL == "" || nombre == "" {
		return ""
	}
	return s.publicURL + nombre
}

// nombreUnico is md5(declared name + unix nanos) + ".pdf". The declared
// extension never reaches the stored name.
func (s *documentoService) nombreUnico(declarado string) string {
	sum := md5.Sum([]byte(declarado + strconv.FormatInt(s.now().UnixNano(), 10)))
	return hex.EncodeToString(sum[:]) + extensionDocumento
}

// decodificarBase64 strips an optional data-URL prefix and decodes the rest.
// Nothing is written when this fails.
func decodificarBase64(contenido string) ([]byte, error) {
	limpio := strings.TrimSpace(dataURLPrefix.ReplaceAllString(strings.TrimSpace(contenido), ""))
	if limpio == "" {
		return nil, apierror.Validacion("El documento está vacío")
	}
	if !base64Alfabeto.MatchString(limpio) {
		return nil, apierror.Validacion("El documento no es un base64 válido")
	}
	data, err := base64.StdEncoding.DecodeString(limpio)
	if err != nil {
		return nil, apierror.Validacion("El documento no es un base64 válido")
	}
	if len(data) == 0 {
		return nil, apierror.Validacion("El documento está vacío")
	}
	return data, nil
}
