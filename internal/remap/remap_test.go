package remap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solharvest/harvester/internal/remap"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "remappings.txt")
	content := "@openzeppelin/=lib/openzeppelin-contracts/\n" +
		"\n" +
		"   \n" +
		"justonevalue\n" +
		"a=b=c\n" +
		"ds-test/=lib/ds-test/src/\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	remappings, err := remap.Parse(file)
	require.NoError(t, err)
	require.Len(t, remappings, 2)

	require.Equal(t, "@openzeppelin/", remappings[0].Name)
	require.Equal(t, dir+"/lib/openzeppelin-contracts/", remappings[0].Path)
	require.Equal(t, "@openzeppelin/="+dir+"/lib/openzeppelin-contracts/", remappings[0].String())

	require.Equal(t, "ds-test/", remappings[1].Name)
	require.Equal(t, dir+"/lib/ds-test/src/", remappings[1].Path)
}

func TestParseMissingFile(t *testing.T) {
	_, err := remap.Parse(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestParseKeepsDuplicateAliases(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "remappings.txt")
	require.NoError(t, os.WriteFile(file, []byte("x/=a/\nx/=b/\n"), 0644))

	remappings, err := remap.Parse(file)
	require.NoError(t, err)
	require.Len(t, remappings, 2)
	require.Equal(t, dir+"/a/", remappings[0].Path)
	require.Equal(t, dir+"/b/", remappings[1].Path)
}
