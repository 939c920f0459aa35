package helpertest

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// TmpFolder is a temporary directory for file based tests
type TmpFolder struct {
	Path   string
	Error  error
	prefix string
}

// TmpFile is a file created inside a TmpFolder
type TmpFile struct {
	Path   string
	Error  error
	Folder *TmpFolder
}

func NewTmpFolder(prefix string) *TmpFolder {
	ipref := prefix

	if len(ipref) == 0 {
		ipref = "ksk-helper"
	}

	path, err := os.MkdirTemp("", ipref)

	return &TmpFolder{
		Path:   path,
		Error:  err,
		prefix: ipref,
	}
}

func (tf *TmpFolder) Clean() error {
	if len(tf.Path) > 0 {
		return os.RemoveAll(tf.Path)
	}

	return nil
}

// CreateStringFile writes lines separated by newlines
func (tf *TmpFolder) CreateStringFile(name string, lines ...string) *TmpFile {
	f, err := tf.createFile(name)
	if err != nil {
		return &TmpFile{Error: err, Folder: tf}
	}

	w := bufio.NewWriter(f)

	_, err = w.WriteString(strings.Join(lines, "\n"))
	if err == nil {
		err = w.Flush()
	}

	return tf.checkState(f, err)
}

// CreateExecutable writes a shell script with the given body lines
func (tf *TmpFolder) CreateExecutable(name string, lines ...string) *TmpFile {
	file := tf.CreateStringFile(name, append([]string{"#!/bin/sh"}, lines...)...)
	if file.Error != nil {
		return file
	}

	const execMode = 0o755

	file.Error = os.Chmod(file.Path, execMode)

	return file
}

func (tf *TmpFolder) JoinPath(name string) string {
	return filepath.Join(tf.Path, name)
}

// ReadFile returns the content of name inside the folder
func (tf *TmpFolder) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(tf.JoinPath(name))

	return string(data), err
}

func (tf *TmpFolder) createFile(name string) (*os.File, error) {
	if len(name) > 0 {
		return os.Create(filepath.Join(tf.Path, name))
	}

	return os.CreateTemp(tf.Path, "temp")
}

func (tf *TmpFolder) checkState(file *os.File, ierr error) *TmpFile {
	err := ierr
	path := file.Name()

	if cerr := file.Close(); err == nil {
		err = cerr
	}

	if err == nil {
		_, err = os.Stat(path)
	}

	return &TmpFile{
		Path:   path,
		Error:  err,
		Folder: tf,
	}
}
