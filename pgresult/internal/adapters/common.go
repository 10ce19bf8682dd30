package adapters

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// fieldOIDForTypeName resolves a driver-reported type name to its catalog
// OID. Drivers report names in varying case ("INT4", "varchar"), the type
// map registers them lowercase. Returns zero when the name is unknown to
// the map, which the handle surfaces as an unresolvable type.
func fieldOIDForTypeName(typeMap *pgtype.Map, typeName string) uint32 {
	if typeName == "" {
		return 0
	}

	dataType, known := typeMap.TypeForName(strings.ToLower(typeName))
	if !known {
		return 0
	}

	return dataType.OID
}
