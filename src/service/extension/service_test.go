package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ProjectsTask/EasyAuctionBackend/src/config"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

func TestCheckAutoExtension(t *testing.T) {
	const endTime = int64(10_000)

	cfg := &config.AuctionCfg{
		ExtensionWindowSecs: 300,
		ExtendBySecs:        120,
		MaxExtensions:       5,
	}

	tests := []struct {
		name          string
		bidTime       int64
		extendedCount int
		cfg           *config.AuctionCfg
		wantExtend    bool
		wantEndTime   int64
	}{
		{
			name:        "bid inside the closing window",
			bidTime:     endTime - 60,
			cfg:         cfg,
			wantExtend:  true,
			wantEndTime: endTime + 120,
		},
		{
			name:        "bid exactly at window boundary",
			bidTime:     endTime - 300,
			cfg:         cfg,
			wantExtend:  true,
			wantEndTime: endTime + 120,
		},
		{
			name:        "bid exactly at end time",
			bidTime:     endTime,
			cfg:         cfg,
			wantExtend:  true,
			wantEndTime: endTime + 120,
		},
		{
			name:       "bid before the window opens",
			bidTime:    endTime - 301,
			cfg:        cfg,
			wantExtend: false,
		},
		{
			name:       "bid after the end time",
			bidTime:    endTime + 1,
			cfg:        cfg,
			wantExtend: false,
		},
		{
			name:          "max extensions reached",
			bidTime:       endTime - 60,
			extendedCount: 5,
			cfg:           cfg,
			wantExtend:    false,
		},
		{
			name:          "one extension left",
			bidTime:       endTime - 60,
			extendedCount: 4,
			cfg:           cfg,
			wantExtend:    true,
			wantEndTime:   endTime + 120,
		},
		{
			name:       "extension disabled by config",
			bidTime:    endTime - 60,
			cfg:        &config.AuctionCfg{},
			wantExtend: false,
		},
		{
			name:          "unlimited extensions when max is zero",
			bidTime:       endTime - 60,
			extendedCount: 99,
			cfg: &config.AuctionCfg{
				ExtensionWindowSecs: 300,
				ExtendBySecs:        120,
			},
			wantExtend:  true,
			wantEndTime: endTime + 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &base.Product{
				ID:            1,
				EndTime:       endTime,
				Status:        base.ProductStatusActive,
				ExtendedCount: tt.extendedCount,
			}

			extend, newEndTime := CheckAutoExtension(product, tt.bidTime, tt.cfg)
			assert.Equal(t, tt.wantExtend, extend)
			if tt.wantExtend {
				assert.Equal(t, tt.wantEndTime, newEndTime)
			}
		})
	}
}
