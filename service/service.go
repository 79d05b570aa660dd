// service/service.go
package service

import (
	"strconv"

	"github.com/dev-mohitbeniwal/blog-api/model"
)

// actorName names the caller in events and audit entries.
func actorName(p *model.Principal) string {
	switch {
	case p == nil:
		return "anonymous"
	case p.MasterKey:
		return "master-key"
	case p.Email != "":
		return p.Email
	default:
		return "author:" + strconv.FormatInt(p.UserID, 10)
	}
}
