package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/logger"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) ProductService {
	return &productService{productRepo: productRepo, userRepo: userRepo}
}

func (s *productService) CreateProduct(ctx context.Context, ownerID int32, in CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "name, description and category are required")
	}
	if !domain.ValidCategory(in.Category) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "unknown category: %s", in.Category)
	}
	if in.HourlyPriceCents <= 0 || in.DailyPriceCents <= 0 {
		return nil, domain.NewError(domain.ErrInvalidInput, "hourly and daily prices must be positive")
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}

	availability := in.Availability
	if availability == "" {
		availability = domain.AvailabilityInStock
	}
	pickup := in.Pickup
	if pickup == "" {
		pickup = "Same day available"
	}

	product := &domain.Product{
		OwnerID:          ownerID,
		OwnerName:        owner.Name,
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		HourlyPriceCents: in.HourlyPriceCents,
		DailyPriceCents:  in.DailyPriceCents,
		Availability:     availability,
		Pickup:           pickup,
		IsActive:         true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "product not found")
		}
		return nil, err
	}
	// View counting is best-effort; a lost increment never fails the read.
	if err := s.productRepo.IncrementViewCount(ctx, id); err != nil {
		logger.Warn("Failed to increment product view count", "product_id", id, "error", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error) {
	return s.productRepo.List(ctx, filter, page, pageSize)
}

func (s *productService) ListMyProducts(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	return s.productRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *productService) getOwnedProduct(ctx context.Context, callerID, id int32) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "product not found")
		}
		return nil, err
	}
	if product.OwnerID != callerID {
		return nil, domain.NewError(domain.ErrForbidden, "you can only manage your own products")
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, callerID, id int32, in UpdateProductInput) (*domain.Product, error) {
	product, err := s.getOwnedProduct(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Category != "" {
		if !domain.ValidCategory(in.Category) {
			return nil, domain.Errorf(domain.ErrInvalidInput, "unknown category: %s", in.Category)
		}
		product.Category = in.Category
	}
	if in.HourlyPriceCents > 0 {
		product.HourlyPriceCents = in.HourlyPriceCents
	}
	if in.DailyPriceCents > 0 {
		product.DailyPriceCents = in.DailyPriceCents
	}
	if in.Availability != "" {
		product.Availability = in.Availability
	}
	if in.Pickup != "" {
		product.Pickup = in.Pickup
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, callerID, id int32) error {
	if _, err := s.getOwnedProduct(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}
