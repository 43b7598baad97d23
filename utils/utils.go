package utils

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

var habaneroSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get habanero source directory with various operating systems
	habaneroSourceDir = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)

	s := filepath.Dir(dir)
	if filepath.Base(s) != "chillisoft" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	// the second caller usually from habanero internal, so set i start from 2
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && (!strings.HasPrefix(file, habaneroSourceDir) || strings.HasSuffix(file, "_test.go")) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}

// IsValidDBNameChar reports whether c can not appear in an unquoted table or column name
func IsValidDBNameChar(c rune) bool {
	return !unicode.IsLetter(c) && !unicode.IsNumber(c) && c != '.' && c != '_' && c != '$' && c != '@'
}

// IsValidDBName reports whether name is a single valid table or column identifier
func IsValidDBName(name string) bool {
	return name != "" && len(strings.FieldsFunc(name, IsValidDBNameChar)) == 1 &&
		strings.IndexFunc(name, IsValidDBNameChar) == -1
}
