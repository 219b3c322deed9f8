package assets

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LoadShader reads a GLSL file from dir.
func LoadShader(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "load shader %q", name)
	}
	return string(b), nil
}

// LoadShaderPair reads <base>.vert and <base>.frag from dir.
func LoadShaderPair(dir, base string) (vs, fs string, err error) {
	if vs, err = LoadShader(dir, base+".vert"); err != nil {
		return "", "", err
	}
	if fs, err = LoadShader(dir, base+".frag"); err != nil {
		return "", "", err
	}
	return vs, fs, nil
}
