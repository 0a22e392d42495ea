package wpschema

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// GlobalID returns the opaque object identifier exposed as the id field:
// the base64 encoding of "<typeName>:<id>".
func GlobalID(typeName string, id int64) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + strconv.FormatInt(id, 10)))
}

// ParseGlobalID reverses GlobalID. It reports false for ids that are not valid
// base64 or carry no type prefix or a non-numeric local id.
func ParseGlobalID(gid string) (typeName string, id int64, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(gid)
	if err != nil {
		return "", 0, false
	}
	typeName, local, found := strings.Cut(string(raw), ":")
	if !found || typeName == "" {
		return "", 0, false
	}
	id, err = strconv.ParseInt(local, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return typeName, id, true
}
