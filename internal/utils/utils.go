package utils

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rana718/jsonsql/internal/mapping"
)

type FileUtils struct{}

// FindMappingFiles walks dir and returns every .json, .yaml and .yml file in
// lexical order.
func (f *FileUtils) FindMappingFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !mapping.IsMappingFile(path) {
			return err
		}
		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk mapping directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

type InputUtils struct {
	In  io.Reader
	Out io.Writer
}

// AskConfirmation asks for yes/no confirmation; anything but y or yes is no.
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(i.Out, "%s (y/N): ", message)

	response, _ := bufio.NewReader(i.In).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
