package db

import (
	"bytes"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/template"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed schema/*.sql
var embedFiles embed.FS

// Dialect fills the driver specific parts of the schema templates.
type Dialect struct {
	Name   string
	Serial string
}

var dialects = map[string]Dialect{
	"sqlite3": {
		Name:   "sqlite3",
		Serial: "INTEGER PRIMARY KEY AUTOINCREMENT",
	},
	"mysql": {
		Name:   "mysql",
		Serial: "BIGINT AUTO_INCREMENT PRIMARY KEY",
	},
	"postgres": {
		Name:   "postgres",
		Serial: "BIGSERIAL PRIMARY KEY",
	},
}

func DialectOf(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported db driver %q", driver)
	}

	return d, nil
}

// Migrate runs the embedded schema migrations for driver.
func Migrate(db *sql.DB, driver string) error {
	dialect, err := DialectOf(driver)
	if err != nil {
		return err
	}

	d, err := iofs.New(&templateFS{
		data: dialect,
		FS:   embedFiles,
	}, "schema")
	if err != nil {
		return err
	}

	var target database.Driver
	switch dialect.Name {
	case "sqlite3":
		target, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case "mysql":
		target, err = mysql.WithInstance(db, &mysql.Config{})
	case "postgres":
		target, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", d, dialect.Name, target)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

type templateFile struct {
	io.ReadCloser
	info *fileInfoWithSize
}

func (t *templateFile) Stat() (fs.FileInfo, error) {
	return t.info, nil
}

type templateFS struct {
	data any
	embed.FS
}

func (t *templateFS) Open(name string) (fs.File, error) {
	file, err := t.FS.Open(name)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	// directories are listed by iofs, only regular files are rendered
	if info.IsDir() {
		return t.FS.Open(name)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(info.Name()).Parse(string(content))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, t.data); err != nil {
		return nil, err
	}

	return &templateFile{
		ReadCloser: io.NopCloser(bytes.NewReader(buf.Bytes())),
		info:       &fileInfoWithSize{info, int64(buf.Len())},
	}, nil
}

type fileInfoWithSize struct {
	fs.FileInfo
	size int64
}

func (f *fileInfoWithSize) Size() int64 {
	return f.size
}
