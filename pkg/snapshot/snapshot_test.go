package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSnapshot(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	wd, err := os.Getwd()
	a.NoError(err)
	a.NoError(os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	obj := map[string]int{"score": 11}
	ValidateSnapshot(t, obj)

	b, err := os.ReadFile(filepath.Join("testdata", "TestValidateSnapshot-0.json"))
	a.NoError(err)
	a.JSONEq(`{"score":11}`, string(b))

	// a second call in the same test gets its own file
	ValidateSnapshot(t, []int{1, 2})
	a.FileExists(filepath.Join("testdata", "TestValidateSnapshot-1.json"))
}

func Test_nextFilename(t *testing.T) {
	a := assert.New(t)
	a.Equal(filepath.Join("testdata", "TestA_sub_case-0.json"), nextFilename("TestA/sub case"))
	a.Equal(filepath.Join("testdata", "TestA_sub_case-1.json"), nextFilename("TestA/sub case"))
}
