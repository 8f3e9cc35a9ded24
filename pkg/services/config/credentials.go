package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// CredentialRegistry exposes the claim API tokens of every reported client,
// in the order their claims are reported.
type CredentialRegistry interface {
	GetClients(ctx context.Context) ([]string, error)
	GetCredential(ctx context.Context, client string) (domain.Credential, error)
	Credentials(ctx context.Context) ([]domain.Credential, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewCredentialRegistry loads an ini file in which every non-empty section is
// a client label holding a `token` key:
//
//	[Acme Peru]
//	token = y2_AgAAAAD...
func NewCredentialRegistry(path string) (CredentialRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file %s: %w", path, err)
	}

	r := &iniRegistry{cfg: cfg}
	if _, err := r.Credentials(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *iniRegistry) GetClients(_ context.Context) ([]string, error) {
	var clients []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			clients = append(clients, section.Name())
		}
	}
	return clients, nil
}

func (r *iniRegistry) GetCredential(_ context.Context, client string) (domain.Credential, error) {
	section, err := r.cfg.GetSection(client)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("client %s not found", client)
	}

	token := strings.TrimSpace(section.Key("token").String())
	if token == "" {
		return domain.Credential{}, fmt.Errorf("client %s has no token", client)
	}

	return domain.Credential{Client: client, Token: token}, nil
}

func (r *iniRegistry) Credentials(ctx context.Context) ([]domain.Credential, error) {
	clients, err := r.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("no clients configured")
	}

	creds := make([]domain.Credential, 0, len(clients))
	for _, client := range clients {
		cred, err := r.GetCredential(ctx, client)
		if err != nil {
			return nil, err
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

// staticRegistry serves credentials given inline in the main config file.
type staticRegistry struct {
	creds []domain.Credential
}

// NewStaticRegistry pairs tokens with client labels by position. Both lists
// must have the same length.
func NewStaticRegistry(tokens, clients []string) (CredentialRegistry, error) {
	if len(tokens) != len(clients) {
		return nil, fmt.Errorf("got %d claim secrets but %d client names", len(tokens), len(clients))
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no clients configured")
	}

	creds := make([]domain.Credential, 0, len(tokens))
	for i := range tokens {
		token := strings.TrimSpace(tokens[i])
		client := strings.TrimSpace(clients[i])
		if token == "" || client == "" {
			return nil, fmt.Errorf("credential %d has an empty token or client name", i)
		}
		creds = append(creds, domain.Credential{Client: client, Token: token})
	}
	return &staticRegistry{creds: creds}, nil
}

func (r *staticRegistry) GetClients(_ context.Context) ([]string, error) {
	clients := make([]string, 0, len(r.creds))
	for _, c := range r.creds {
		clients = append(clients, c.Client)
	}
	return clients, nil
}

func (r *staticRegistry) GetCredential(_ context.Context, client string) (domain.Credential, error) {
	for _, c := range r.creds {
		if c.Client == client {
			return c, nil
		}
	}
	return domain.Credential{}, fmt.Errorf("client %s not found", client)
}

func (r *staticRegistry) Credentials(_ context.Context) ([]domain.Credential, error) {
	return append([]domain.Credential(nil), r.creds...), nil
}
