package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a demo campaign hierarchy for local development. Each
// campaign gets two ad sets with two ads apiece; the first ad set and its
// first ad are Active so campaigns can be activated right away.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 1; i <= 3; i++ {
		campaignID := uuid.NewString()
		_, err := pool.Exec(ctx, `INSERT INTO campaigns (id, name, budget, status)
VALUES ($1, $2, $3, 'Paused') ON CONFLICT DO NOTHING`,
			campaignID, fmt.Sprintf("Campaign %d", i), int64(100_000))
		if err != nil {
			return err
		}

		for j := 1; j <= 2; j++ {
			adSetID := uuid.NewString()
			adSetStatus := "Paused"
			if j == 1 {
				adSetStatus = "Active"
			}
			_, err = pool.Exec(ctx, `INSERT INTO ad_sets (id, campaign_id, name, budget, status)
VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
				adSetID, campaignID, fmt.Sprintf("Ad Set %d-%d", i, j), int64(25_000), adSetStatus)
			if err != nil {
				return err
			}

			for k := 1; k <= 2; k++ {
				adStatus := "Paused"
				if k == 1 {
					adStatus = "Active"
				}
				_, err = pool.Exec(ctx, `INSERT INTO ads (id, ad_set_id, name, content, creative, status)
VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
					uuid.NewString(), adSetID,
					fmt.Sprintf("Ad %d-%d-%d", i, j, k),
					fmt.Sprintf("Buy now! Offer %d-%d-%d", i, j, k),
					fmt.Sprintf("https://example.com/creative/%d-%d-%d.png", i, j, k),
					adStatus)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
