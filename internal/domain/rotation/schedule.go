package rotation

import "github.com/groupwarden/groupwarden/internal/types"

// SlotCount is the length of the raid rotation cycle in days.
const SlotCount = 12

// Slot is one calendar day of the rotation: two raid bosses and the tier the
// day counts as for notification filtering.
type Slot struct {
	BossA    string             `json:"boss_a"`
	BossB    string             `json:"boss_b"`
	Category types.RaidCategory `json:"category"`
}

// Schedule is the fixed rotation calendar. Slot 0 falls on the configured
// epoch date and the cycle repeats every SlotCount days. Read-only.
var Schedule = [SlotCount]Slot{
	{BossA: "Emberlord", BossB: "Frostmaw", Category: types.RaidCategoryStandard},
	{BossA: "Nightshade", BossB: "Grimtalon", Category: types.RaidCategoryStandard},
	{BossA: "Stormcaller", BossB: "Ironhide", Category: types.RaidCategoryRare},
	{BossA: "Vexmother", BossB: "Duskwing", Category: types.RaidCategoryStandard},
	{BossA: "Pyreclaw", BossB: "Hollowfang", Category: types.RaidCategoryLegendary},
	{BossA: "Tidebinder", BossB: "Sunspear", Category: types.RaidCategoryStandard},
	{BossA: "Ashwalker", BossB: "Glacius", Category: types.RaidCategoryRare},
	{BossA: "Thornveil", BossB: "Mirewarden", Category: types.RaidCategoryStandard},
	{BossA: "Skyrender", BossB: "Oakenheart", Category: types.RaidCategoryMythic},
	{BossA: "Shadowmere", BossB: "Lumenis", Category: types.RaidCategoryStandard},
	{BossA: "Bonechill", BossB: "Ravenlord", Category: types.RaidCategoryRare},
	{BossA: "Starfall", BossB: "Magmarok", Category: types.RaidCategoryLegendary},
}
