// Package usecase implements company-scoped client management.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"workspace_backend/internal/feature/clients/domain/entity"
)

// ClientRepository abstracts the persistence layer for client entities.
// Every method is scoped by companyID so the adapter can enforce the
// tenant filter at the query level.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error

	// FindByID retrieves a client within a company. Returns ErrNotFound
	// when the ID does not exist in that company, even if it exists in
	// another.
	FindByID(ctx context.Context, companyID, id uint) (*entity.Client, error)

	ListByCompany(ctx context.Context, companyID uint) ([]entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error

	// Delete removes a client within a company. Returns ErrNotFound when
	// nothing matched.
	Delete(ctx context.Context, companyID, id uint) error
}

// MembershipChecker gates every operation on company membership.
// Satisfied by the workspace usecase.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, companyID uint) (bool, error)
}

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// ClientUsecase implements client CRUD behind the membership gate.
type ClientUsecase struct {
	clients ClientRepository
	gate    MembershipChecker
}

// NewClientUsecase creates a new ClientUsecase.
func NewClientUsecase(clients ClientRepository, gate MembershipChecker) *ClientUsecase {
	return &ClientUsecase{clients: clients, gate: gate}
}

func (u *ClientUsecase) authorize(ctx context.Context, userID, companyID uint) error {
	ok, err := u.gate.IsMember(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// Create adds a client to the company.
func (u *ClientUsecase) Create(ctx context.Context, userID, companyID uint, in ClientInput) (*entity.Client, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		return nil, fmt.Errorf("client name must not be empty")
	}

	client := &entity.Client{
		CompanyID: companyID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Notes:     in.Notes,
	}
	if err := u.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// List returns the company's clients.
func (u *ClientUsecase) List(ctx context.Context, userID, companyID uint) ([]entity.Client, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return u.clients.ListByCompany(ctx, companyID)
}

// Get returns one client of the company.
func (u *ClientUsecase) Get(ctx context.Context, userID, companyID, clientID uint) (*entity.Client, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return u.clients.FindByID(ctx, companyID, clientID)
}

// Update changes a client's writable fields.
func (u *ClientUsecase) Update(ctx context.Context, userID, companyID, clientID uint, in ClientInput) (*entity.Client, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}

	client, err := u.clients.FindByID(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	if in.Name = strings.TrimSpace(in.Name); in.Name != "" {
		client.Name = in.Name
	}
	client.Email = in.Email
	client.Phone = in.Phone
	client.Notes = in.Notes

	if err := u.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client from the company.
func (u *ClientUsecase) Delete(ctx context.Context, userID, companyID, clientID uint) error {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return err
	}
	return u.clients.Delete(ctx, companyID, clientID)
}
