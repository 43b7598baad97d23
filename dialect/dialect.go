package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/chillisoft/habanero/datamapper"
)

// Dialect formats SQL text for one database
type Dialect interface {
	// GetName get dialect's name
	GetName() string
	// BindVar return the placeholder for the i-th argument, counted from 1
	BindVar(i int) string
	// Quote quotes field name to avoid SQL parsing exceptions by using a reserved word as a field name
	Quote(key string) string
	// DataTypeOf return the column type of kind
	DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string
	// SupportLastInsertID reports whether sql.Result.LastInsertId returns the generated key
	SupportLastInsertID() bool
	// LastInsertIDOutputInterstitial is written between the column list and VALUES
	// to read back the generated key
	LastInsertIDOutputInterstitial(column string) string
	// LastInsertIDReturningSuffix is appended to an INSERT to read back the generated key
	LastInsertIDReturningSuffix(column string) string
}

var (
	mu       sync.RWMutex
	dialects = map[string]Dialect{}
)

// Register makes d available under name
func Register(name string, d Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[strings.ToLower(name)] = d
}

// Get returns the dialect registered under name
func Get(name string) (Dialect, error) {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := dialects[strings.ToLower(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", name)
}

// Names lists the registered dialect names
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("common", Common{})
	Register("mysql", MySQL{})
	Register("postgres", Postgres{})
	Register("pgx", Postgres{})
	Register("sqlite3", SQLite3{})
	Register("sqlite", SQLite3{})
	Register("mssql", MSSQL{})
	Register("oracle", Oracle{})
}

const guidSize = 38

func sizedOr(format string, size int, unbounded string) string {
	if size > 0 && size < 65532 {
		return fmt.Sprintf(format, size)
	}
	return unbounded
}
