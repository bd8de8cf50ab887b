package model

// Equipment and inventory bucket hashes from the vendor manifest.
const (
	BucketKinetic     uint32 = 1498876634
	BucketEnergy      uint32 = 2465295065
	BucketPower       uint32 = 953998645
	BucketHelmet      uint32 = 3448274439
	BucketGauntlets   uint32 = 3551918588
	BucketChest       uint32 = 14239492
	BucketLegs        uint32 = 20886954
	BucketClassItem   uint32 = 1585787867
	BucketGhost       uint32 = 4023194814
	BucketShips       uint32 = 284967655
	BucketSparrows    uint32 = 2025709351
	BucketEmblems     uint32 = 4274335291
	BucketConsumables uint32 = 1469714392
	BucketMaterials   uint32 = 3865314626
)

// DefaultBucketCatalog returns the application-wide bucket catalog. Weapon
// and armor slots aggregate into the Weapons and Armor vault buckets;
// account-wide buckets count as themselves.
func DefaultBucketCatalog() *BucketCatalog {
	return &BucketCatalog{Buckets: []Bucket{
		{Hash: BucketWeapons, Name: "Weapons"},
		{Hash: BucketArmor, Name: "Armor"},
		{Hash: BucketGeneral, Name: "General"},

		{Hash: BucketKinetic, Name: "Kinetic Weapons", VaultBucket: BucketWeapons},
		{Hash: BucketEnergy, Name: "Energy Weapons", VaultBucket: BucketWeapons},
		{Hash: BucketPower, Name: "Power Weapons", VaultBucket: BucketWeapons},

		{Hash: BucketHelmet, Name: "Helmet", VaultBucket: BucketArmor},
		{Hash: BucketGauntlets, Name: "Gauntlets", VaultBucket: BucketArmor},
		{Hash: BucketChest, Name: "Chest Armor", VaultBucket: BucketArmor},
		{Hash: BucketLegs, Name: "Leg Armor", VaultBucket: BucketArmor},
		{Hash: BucketClassItem, Name: "Class Armor", VaultBucket: BucketArmor},

		{Hash: BucketGhost, Name: "Ghost", VaultBucket: BucketGeneral},
		{Hash: BucketShips, Name: "Ships", VaultBucket: BucketGeneral},
		{Hash: BucketSparrows, Name: "Sparrows", VaultBucket: BucketGeneral},
		{Hash: BucketEmblems, Name: "Emblems", VaultBucket: BucketGeneral},

		{Hash: BucketConsumables, Name: "Consumables", AccountWide: true, VaultBucket: BucketGeneral},
		{Hash: BucketMaterials, Name: "Materials", AccountWide: true, VaultBucket: BucketGeneral},
	}}
}
