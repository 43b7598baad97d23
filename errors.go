package habanero

import (
	"errors"

	"github.com/chillisoft/habanero/bo"
	"github.com/chillisoft/habanero/committer"
	"github.com/chillisoft/habanero/errtranslator"
	"github.com/chillisoft/habanero/generator"
	"github.com/chillisoft/habanero/schema"
)

var (
	// ErrNoCatalog catalog required
	ErrNoCatalog = errors.New("class definition catalog required")
	// ErrInvalidDefinition invalid class definition
	ErrInvalidDefinition = schema.ErrInvalidDefinition
	// ErrUnknownClass class not in the catalog
	ErrUnknownClass = schema.ErrUnknownClass
	// ErrMissingDiscriminator single table inheritance without discriminator
	ErrMissingDiscriminator = schema.ErrMissingDiscriminator
	// ErrCompositeKeyCopy composite parent key under an id field override
	ErrCompositeKeyCopy = schema.ErrCompositeKeyCopy
	// ErrPrimaryKeyRequired primary keys required
	ErrPrimaryKeyRequired = generator.ErrPrimaryKeyRequired
	// ErrInvalidPropValue property value does not parse or fails validation
	ErrInvalidPropValue = bo.ErrInvalidPropValue
	// ErrNoDB database required to save
	ErrNoDB = committer.ErrNoDB
	// ErrDuplicatedKey a save violated a unique or primary key
	ErrDuplicatedKey = errtranslator.ErrDuplicatedKey
	// ErrForeignKeyViolated a save violated a foreign key
	ErrForeignKeyViolated = errtranslator.ErrForeignKeyViolated
)
