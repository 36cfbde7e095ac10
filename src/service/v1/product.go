package service

import (
	"context"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

// GetProductDetail 查询拍品详情
func GetProductDetail(ctx context.Context, svcCtx *svc.ServerCtx, productID int64) (*types.ProductDetail, error) {
	product, err := svcCtx.Dao.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errcode.ErrNotFound
	}

	detail := &types.ProductDetail{
		ID:              product.ID,
		SellerID:        product.SellerID,
		Name:            product.Name,
		CurrentPrice:    product.CurrentPrice,
		PriceStep:       product.PriceStep,
		StartTime:       product.StartTime,
		EndTime:         product.EndTime,
		Status:          product.Status,
		WinnerID:        product.WinnerID,
		AllowNewBidders: product.AllowNewBidders,
		ExtendedCount:   product.ExtendedCount,
	}
	if product.BuyNowPrice.Valid {
		buyNow := product.BuyNowPrice.Decimal
		detail.BuyNowPrice = &buyNow
	}

	return detail, nil
}
