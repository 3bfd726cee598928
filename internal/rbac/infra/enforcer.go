package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policies memetakan role -> resource -> action.
// Role di sistem ini tetap (Admin dan UMKM), bukan data per-tenant,
// sehingga policy dimuat sekali saat startup.
var policies = [][]string{
	// Admin: full review & master data
	{"Admin", "user", "read"},
	{"Admin", "user", "update"},
	{"Admin", "user", "delete"},
	{"Admin", "master_location", "read"},
	{"Admin", "master_location", "create"},
	{"Admin", "master_location", "update"},
	{"Admin", "permit", "read"},
	{"Admin", "permit", "approve"},
	{"Admin", "deletion_request", "read"},
	{"Admin", "deletion_request", "approve"},
	{"Admin", "report", "read"},
	{"Admin", "report", "update"},
	{"Admin", "notification", "read"},
	{"Admin", "notification", "update"},

	// UMKM: own profile, own permits and deletion requests
	{"UMKM", "user", "read"},
	{"UMKM", "user", "update"},
	{"UMKM", "master_location", "read"},
	{"UMKM", "permit", "read"},
	{"UMKM", "permit", "create"},
	{"UMKM", "permit", "delete"},
	{"UMKM", "deletion_request", "read"},
	{"UMKM", "deletion_request", "create"},
	{"UMKM", "deletion_request", "cancel"},
	{"UMKM", "notification", "read"},
	{"UMKM", "notification", "update"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
