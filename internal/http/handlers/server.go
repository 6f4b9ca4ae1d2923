package handlers

import (
	"github.com/rogerio-castellano/kiosco-pos/internal/kitchen"
	"github.com/rogerio-castellano/kiosco-pos/internal/redissvc"
	repo "github.com/rogerio-castellano/kiosco-pos/internal/repo"
	"github.com/rogerio-castellano/kiosco-pos/internal/sales"
)

var (
	productRepo repo.ProductRepository
	saleRepo    repo.SaleRepository
	ticketRepo  repo.TicketRepository
	userRepo    repo.UserRepository

	saleSvc    *sales.Service
	kitchenSvc *kitchen.Service

	cache *redissvc.RedisService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
	saleSvc = sales.NewService(r)
}

func SetTicketRepo(r repo.TicketRepository) {
	ticketRepo = r
	kitchenSvc = kitchen.NewService(r)
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	cache = rs
}
