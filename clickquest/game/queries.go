package game

const (
	queryIncrement = `
		INSERT INTO click_stats (user_id, clicks, last_click_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET clicks = click_stats.clicks + 1, last_click_at = EXCLUDED.last_click_at
		RETURNING user_id, clicks, last_click_at
	`

	queryStatsFor = `
		SELECT user_id, clicks, last_click_at
		FROM click_stats
		WHERE user_id = $1
	`

	queryLeaderboard = `
		SELECT u.id, u.name, c.clicks
		FROM click_stats c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.clicks DESC, c.last_click_at ASC
		LIMIT $1
	`
)
