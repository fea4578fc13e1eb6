package handler

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"appointment-booking-api/internal/auth"
	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

func (h *Handler) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return nil, status.Error(codes.InvalidArgument, "all fields required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid email")
	}
	if len(req.Password) < 8 {
		return nil, status.Error(codes.InvalidArgument, "password too short")
	}

	role := model.RolePatient
	if req.Role != "" {
		role = model.Role(strings.ToLower(req.Role))
	}
	// admins are provisioned out of band
	if role != model.RolePatient && role != model.RoleProvider {
		return nil, status.Error(codes.InvalidArgument, "role must be patient or provider")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}

	if err := h.accounts.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// dup email, but don't reveal that
			return nil, status.Error(codes.AlreadyExists, "registration failed")
		}
		h.log.Error("create user", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	tok, err := auth.MakeToken(model.Actor{UserID: u.ID, Role: u.Role}, h.secret)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.RegisterResponse{UserId: u.ID, Token: tok}, nil
}

func (h *Handler) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}

	u, err := h.accounts.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error("lookup user", zap.Error(err))
		}
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	tok, err := auth.MakeToken(model.Actor{UserID: u.ID, Role: u.Role}, h.secret)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.LoginResponse{Token: tok, UserId: u.ID, Name: u.Name, Role: string(u.Role)}, nil
}
