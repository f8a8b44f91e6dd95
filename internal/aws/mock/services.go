// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package mock

import (
	"sync"

	"github.com/stretchr/testify/mock"

	awsx "github.com/tfctl/awsmcp/aws"
)

// Services is an [awsx.Services] backed by the mocks in this package. Every
// region derived through WithRegion shares the same mocks; the requested
// regions are recorded in order.
type Services struct {
	CloudFormationAPI *CloudFormationAPI
	CloudWatchLogsAPI *CloudWatchLogsAPI
	EC2API            *EC2API
	ECRAPI            *ECRAPI
	LambdaAPI         *LambdaAPI
	Route53API        *Route53API
	S3API             *S3API
	SecretsManagerAPI *SecretsManagerAPI
	STSAPI            *STSAPI

	region   string
	mu       *sync.Mutex
	requests *[]string
}

var _ awsx.Services = &Services{}

// NewServices returns Services bound to region with a fresh mock per service.
func NewServices(region string) *Services {
	return &Services{
		CloudFormationAPI: &CloudFormationAPI{},
		CloudWatchLogsAPI: &CloudWatchLogsAPI{},
		EC2API:            &EC2API{},
		ECRAPI:            &ECRAPI{},
		LambdaAPI:         &LambdaAPI{},
		Route53API:        &Route53API{},
		S3API:             &S3API{},
		SecretsManagerAPI: &SecretsManagerAPI{},
		STSAPI:            &STSAPI{},
		region:            region,
		mu:                &sync.Mutex{},
		requests:          &[]string{},
	}
}

// RegionRequests returns every non-empty region passed to WithRegion.
func (s *Services) RegionRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), *s.requests...)
}

// AssertExpectations is a convenience over calling it on every mock.
func (s *Services) AssertExpectations(t mock.TestingT) {
	s.CloudFormationAPI.AssertExpectations(t)
	s.CloudWatchLogsAPI.AssertExpectations(t)
	s.EC2API.AssertExpectations(t)
	s.ECRAPI.AssertExpectations(t)
	s.LambdaAPI.AssertExpectations(t)
	s.Route53API.AssertExpectations(t)
	s.S3API.AssertExpectations(t)
	s.SecretsManagerAPI.AssertExpectations(t)
	s.STSAPI.AssertExpectations(t)
}

func (s *Services) Region() string { return s.region }

func (s *Services) WithRegion(region string) awsx.Services {
	if region == "" {
		return s
	}
	s.mu.Lock()
	*s.requests = append(*s.requests, region)
	s.mu.Unlock()

	cp := *s
	cp.region = region
	return &cp
}

func (s *Services) CloudFormation() awsx.CloudFormationAPI { return s.CloudFormationAPI }
func (s *Services) CloudWatchLogs() awsx.CloudWatchLogsAPI { return s.CloudWatchLogsAPI }
func (s *Services) EC2() awsx.EC2API                       { return s.EC2API }
func (s *Services) ECR() awsx.ECRAPI                       { return s.ECRAPI }
func (s *Services) Lambda() awsx.LambdaAPI                 { return s.LambdaAPI }
func (s *Services) Route53() awsx.Route53API               { return s.Route53API }
func (s *Services) S3() awsx.S3API                         { return s.S3API }
func (s *Services) SecretsManager() awsx.SecretsManagerAPI { return s.SecretsManagerAPI }
func (s *Services) STS() awsx.STSAPI                       { return s.STSAPI }
