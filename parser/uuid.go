package parser

import "github.com/google/uuid"

// isUUID reports whether s parses as a UUID, the validity check for
// `<#uuid>` / `<@uuid>` mentions (spec §4.1, §6).
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
