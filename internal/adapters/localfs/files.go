package localfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hotelbook/internal/domain"
)

// Store keeps hotel images on the local filesystem under
// root/<hotelID>/. Served paths are /public/<hotelID>/<file>.
type Store struct{ root string }

func New(root string) *Store { return &Store{root: root} }

func (s *Store) Save(hotelID, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, hotelID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	// timestamp prefix keeps names unique and upload-ordered
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitize(filename))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return "/public/" + hotelID + "/" + name, nil
}

func (s *Store) List(hotelID string) ([]string, error) {
	ents, err := os.ReadDir(filepath.Join(s.root, hotelID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if !e.IsDir() {
			out = append(out, "/public/"+hotelID+"/"+e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Delete removes the stored file whose name ends with fileID.
func (s *Store) Delete(hotelID, fileID string) error {
	dir := filepath.Join(s.root, hotelID)
	ents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return err
	}
	for _, e := range ents {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileID) {
			return os.Remove(filepath.Join(dir, e.Name()))
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteAll(hotelID string) error {
	return os.RemoveAll(filepath.Join(s.root, hotelID))
}

// sanitize strips path separators from client-supplied names.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}
