// Package favorites mantiene el set de razas favoritas, normalizado y sin duplicados,
// espejado a un archivo JSON (array de strings).
//
// El archivo se lee una sola vez al construir el Store. Cada mutación que cambia el set
// reescribe el archivo completo; si la escritura falla se loguea y el estado en memoria sigue
// siendo la fuente de verdad mientras viva el proceso.
package favorites

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dropDatabas3/breedbox/internal/metrics"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
	"github.com/dropDatabas3/breedbox/internal/util/atomicwrite"
)

const (
	// DefaultFile es el archivo por defecto, relativo al working directory.
	DefaultFile = "favorites.json"

	filePerm = 0o644
)

// ErrInvalidArgument: nombre de raza vacío o solo espacios.
var ErrInvalidArgument = errors.New("favorites: breed name cannot be empty")

// Normalize recorta espacios y pasa a minúsculas.
func Normalize(breed string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(breed))
	if n == "" {
		return "", ErrInvalidArgument
	}
	return n, nil
}

// Store guarda los favoritos en orden de inserción.
// El archivo se asume tocado por un solo proceso (last-writer-wins).
type Store struct {
	mu    sync.Mutex
	path  string
	items []string
	log   *zap.Logger
}

// New crea el store y carga path. Un archivo ausente o corrupto arranca vacío.
func New(path string, log *zap.Logger) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}
	if log == nil {
		log = logger.L()
	}
	s := &Store{
		path: path,
		log:  log.With(logger.Component("favorites"), logger.File(path)),
	}
	s.load()
	return s
}

// Path retorna la ruta del archivo de persistencia.
func (s *Store) Path() string { return s.path }

// load nunca falla: cualquier error deja el set vacío.
func (s *Store) load() {
	s.items = []string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("favorites file not found, starting empty")
		} else {
			s.log.Warn("favorites file unreadable, starting empty", logger.Err(err))
		}
		return
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn("favorites file corrupt, starting empty", logger.Err(err))
		return
	}

	// re-normalizar por si el archivo fue editado a mano
	for _, b := range raw {
		n, err := Normalize(b)
		if err != nil || slices.Contains(s.items, n) {
			continue
		}
		s.items = append(s.items, n)
	}
	s.log.Info("favorites loaded", logger.Count(len(s.items)))
}

// List retorna una copia del set en orden de inserción.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Contains reporta si breed (normalizado) es favorito.
func (s *Store) Contains(breed string) bool {
	n, err := Normalize(breed)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.items, n)
}

// Add agrega breed normalizado. Idempotente: si ya estaba no toca el archivo.
func (s *Store) Add(breed string) error {
	n, err := Normalize(breed)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.items, n) {
		return nil
	}
	s.items = append(s.items, n)
	s.persistLocked()
	return nil
}

// Remove quita breed normalizado. Si no estaba es un no-op y no toca el archivo.
func (s *Store) Remove(breed string) error {
	n, err := Normalize(breed)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.items, n)
	if i < 0 {
		return nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persistLocked()
	return nil
}

// persistLocked reescribe el archivo completo. Requiere s.mu tomado.
// Los errores se loguean y no se propagan.
func (s *Store) persistLocked() {
	if err := atomicwrite.WriteJSON(s.path, s.items, filePerm); err != nil {
		metrics.RecordFavoritesWrite(false)
		s.log.Error("error saving favorites", logger.Err(err), logger.Count(len(s.items)))
		return
	}
	metrics.RecordFavoritesWrite(true)
}
