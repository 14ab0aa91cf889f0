package redisx

import "time"

// Dashboard entity counts: dashboard:counts -> {"usuarios":N,"productos":N,"pedidos":N}
const KeyDashboardCounts = "dashboard:counts"

const TTLDashboardCounts = 5 * time.Minute
