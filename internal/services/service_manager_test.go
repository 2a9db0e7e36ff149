package services

import (
	"context"
	"testing"
	"time"
)

func TestServiceManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	sm := NewDefaultServiceManager(nil, newMockRepository(), newTestLogger(), newTestValidator(), nil).(*serviceManager)

	if sm.IsInitialized() {
		t.Error("manager reports initialized before Initialize")
	}
	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !sm.IsInitialized() {
		t.Error("manager not initialized after Initialize")
	}

	// Second initialize is a no-op
	if err := sm.Initialize(ctx); err != nil {
		t.Errorf("repeated Initialize failed: %v", err)
	}

	if sm.Employee() == nil {
		t.Error("Employee() returned nil")
	}
	if sm.User() == nil {
		t.Error("User() returned nil")
	}
	if sm.Directory() == nil {
		t.Error("Directory() returned nil")
	}
	if sm.Lookup() == nil {
		t.Error("Lookup() returned nil")
	}
	if sm.AccountMirror() == nil {
		t.Error("AccountMirror() returned nil")
	}
	if sm.GridSetting() == nil {
		t.Error("GridSetting() returned nil")
	}

	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	if err := sm.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	if !sm.IsShutdown() {
		t.Error("manager not shut down after Shutdown")
	}
}

func TestServiceManagerPanicsBeforeInitialize(t *testing.T) {
	sm := NewDefaultServiceManager(nil, newMockRepository(), newTestLogger(), newTestValidator(), nil)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when accessing service before Initialize")
		}
	}()
	sm.Employee()
}

func TestServiceManagerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServiceManagerConfig)
		wantErr bool
	}{
		{
			name:   "defaults pass",
			mutate: func(c *ServiceManagerConfig) {},
		},
		{
			name: "zero timeout",
			mutate: func(c *ServiceManagerConfig) {
				c.DefaultTimeout = 0
			},
			wantErr: true,
		},
		{
			name: "negative retries",
			mutate: func(c *ServiceManagerConfig) {
				c.MaxRetries = -1
			},
			wantErr: true,
		},
		{
			name: "negative cache ttl",
			mutate: func(c *ServiceManagerConfig) {
				c.Lookup.CacheTTL = -time.Minute
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := ServiceManagerConfig{
				Employee:       ServiceConfig{Enabled: true},
				User:           ServiceConfig{Enabled: true},
				Directory:      ServiceConfig{Enabled: true},
				Lookup:         ServiceConfig{Enabled: true},
				GridSetting:    ServiceConfig{Enabled: true},
				DefaultTimeout: 30 * time.Second,
				MaxRetries:     3,
			}
			tt.mutate(&config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceManagerWithTimeout(t *testing.T) {
	sm := NewDefaultServiceManager(nil, newMockRepository(), newTestLogger(), newTestValidator(), nil).(*serviceManager)

	ctx, cancel := sm.WithTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context has no deadline")
	}
	if time.Until(deadline) > 30*time.Second {
		t.Errorf("deadline %v further out than the default timeout", deadline)
	}
}
