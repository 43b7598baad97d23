package schema

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
)

// Namer fills in table and column names a class definition leaves empty
type Namer interface {
	TableName(class string) string
	ColumnName(table, prop string) string
	IndexName(table, key string) string
}

// IdentityNamer uses class and property names verbatim
type IdentityNamer struct{}

func (IdentityNamer) TableName(class string) string {
	return class
}

func (IdentityNamer) ColumnName(table, prop string) string {
	return prop
}

func (IdentityNamer) IndexName(table, key string) string {
	return indexName(table, key)
}

// NamingStrategy snake_case columns and pluralised tables
type NamingStrategy struct {
	TablePrefix   string
	SingularTable bool
}

// TableName convert class name to table name
func (ns NamingStrategy) TableName(class string) string {
	if ns.SingularTable {
		return ns.TablePrefix + toDBName(class)
	}
	return ns.TablePrefix + inflection.Plural(toDBName(class))
}

// ColumnName convert property name to column name
func (ns NamingStrategy) ColumnName(table, prop string) string {
	return toDBName(prop)
}

// IndexName generate unique index name for an alternate key
func (ns NamingStrategy) IndexName(table, key string) string {
	return indexName(table, toDBName(key))
}

func indexName(table, key string) string {
	idxName := fmt.Sprintf("uk_%v_%v", table, key)

	if utf8.RuneCountInString(idxName) > 64 {
		h := sha1.New()
		h.Write([]byte(idxName))
		bs := h.Sum(nil)

		idxName = idxName[0:48] + hex.EncodeToString(bs)[:16]
	}
	return idxName
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, initialism[:1]+strings.ToLower(initialism[1:]))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

func toDBName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return v.(string)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	smap.Store(name, buf.String())
	return buf.String()
}
