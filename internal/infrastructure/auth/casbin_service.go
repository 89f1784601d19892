package auth

import (
	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer over the file-backed policy. There is
// no local database in this service; role policies ship as a CSV next to the
// model.
func NewCasbinService(modelPath, policyPath string) (*CasbinService, error) {
	adp := fileadapter.NewAdapter(policyPath)
	e, err := casbin.NewEnforcer(modelPath, adp)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{e}, nil
}
