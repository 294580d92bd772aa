package handler

import (
	"context"

	"github.com/Zigvert/go-shareit/internal/application"
	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/comment"
	"github.com/Zigvert/go-shareit/internal/domain/item"
	"github.com/Zigvert/go-shareit/internal/domain/user"
)

// UserServiceInterface は利用者サービスのインターフェース
type UserServiceInterface interface {
	CreateUser(ctx context.Context, input application.CreateUserInput) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*user.User, error)
	UpdateUser(ctx context.Context, input application.UpdateUserInput) (*user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ItemServiceInterface はアイテムサービスのインターフェース
type ItemServiceInterface interface {
	CreateItem(ctx context.Context, input application.CreateItemInput) (*item.Item, error)
	UpdateItem(ctx context.Context, input application.UpdateItemInput) (*item.Item, error)
	GetItem(ctx context.Context, actorID, itemID string) (*application.ItemDetail, error)
	ListOwnItems(ctx context.Context, ownerID string, from, size int) ([]*application.ItemDetail, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]*item.Item, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	ResolveBooking(ctx context.Context, actorID, bookingID string, approved bool) (*booking.Booking, error)
	GetBooking(ctx context.Context, actorID, bookingID string) (*booking.Booking, error)
	ListBookings(ctx context.Context, input application.ListBookingsInput) ([]*booking.Booking, error)
}

// CommentServiceInterface はコメントサービスのインターフェース
type CommentServiceInterface interface {
	AddComment(ctx context.Context, input application.AddCommentInput) (*comment.Comment, error)
}
