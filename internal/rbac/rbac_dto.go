package rbac

import "go-hrsuit/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type PolicyResponse = domain.PolicyResponse
