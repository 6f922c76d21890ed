package repositories

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"

	"google.golang.org/api/iterator"
)

// userDoc is the Firestore shape of a user.
type userDoc struct {
	ID           int64
	Name         string
	Email        string
	Password     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func userToDoc(u *models.User) userDoc {
	return userDoc{
		ID:           int64(u.ID),
		Name:         u.Name,
		Email:        u.Email,
		Password:     u.Password,
		Phone:        u.Phone,
		AddressLine1: u.AddressLine1,
		AddressLine2: u.AddressLine2,
		City:         u.City,
		State:        u.State,
		PostalCode:   u.PostalCode,
		Country:      u.Country,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID:           uint(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		Password:     d.Password,
		Phone:        d.Phone,
		AddressLine1: d.AddressLine1,
		AddressLine2: d.AddressLine2,
		City:         d.City,
		State:        d.State,
		PostalCode:   d.PostalCode,
		Country:      d.Country,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// firestoreUserRepository is the Firestore implementation of UserRepository.
type firestoreUserRepository struct {
	store *firestoreStore
}

func (r *firestoreUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	iter := r.store.runQuery(ctx, r.store.client.Collection("users").Query)
	defer iter.Stop()

	var users []models.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get users: %w", err)
		}
		var d userDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
		}
		users = append(users, d.toModel())
	}
	return users, nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	snap, err := r.store.getDoc(ctx, r.store.client.Collection("users").Doc(docID(id)))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode user %d: %w", id, err)
	}
	user := d.toModel()
	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := r.store.client.Collection("users").Where("Email", "==", email).Limit(1)
	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("user with email %s %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", email, err)
	}
	user := d.toModel()
	return &user, nil
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		id, err := r.store.nextID(ctx, "users")
		if err != nil {
			return err
		}
		user.ID = id
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	ref := r.store.client.Collection("users").Doc(docID(user.ID))
	if err := r.store.setDoc(ctx, ref, userToDoc(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *models.User) error {
	ref := r.store.client.Collection("users").Doc(docID(user.ID))
	if r.store.tx == nil {
		if _, err := ref.Get(ctx); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("user with ID %d %w", user.ID, ErrNotFound)
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
	}
	user.UpdatedAt = time.Now()
	if err := r.store.setDoc(ctx, ref, userToDoc(user)); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
