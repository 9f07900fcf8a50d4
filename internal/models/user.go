package models

// User is an account plus its two exclusively-owned collections. The
// username is immutable after creation. LastLogin is a DD-MM-YYYY string,
// empty until the first recorded login. The password is an opaque
// credential compared by exact match; hashing, if any, belongs to the
// layer that transports it.
type User struct {
	Username      string         `json:"username" db:"username"`
	Name          string         `json:"name" db:"name"`
	Password      string         `json:"-" db:"password"`
	Streak        int            `json:"streak" db:"streak"`
	LastLogin     string         `json:"last_login" db:"last_login"`
	DarkMode      bool           `json:"dark_mode" db:"dark_mode"`
	ClothingItems []ClothingItem `json:"clothing_items"`
	Outfits       []Outfit       `json:"outfits"`
}

func NewUser(username, name, password string) *User {
	return &User{
		Username: username,
		Name:     name,
		Password: password,
	}
}

// IncrementStreak bumps the consecutive-login counter by one.
func (u *User) IncrementStreak() {
	u.Streak++
}

// ResetStreak zeroes the counter after a gap.
func (u *User) ResetStreak() {
	u.Streak = 0
}

// SetStreak sets the counter directly; negative values clamp to 0 so the
// streak invariant holds regardless of caller input.
func (u *User) SetStreak(value int) {
	if value < 0 {
		value = 0
	}
	u.Streak = value
}

func (u *User) AddClothingItem(item ClothingItem) {
	u.ClothingItems = append(u.ClothingItems, item)
}

func (u *User) AddOutfit(outfit Outfit) {
	u.Outfits = append(u.Outfits, outfit)
}

// Clone returns a deep copy, collections included.
func (u *User) Clone() *User {
	out := *u
	if u.ClothingItems != nil {
		out.ClothingItems = make([]ClothingItem, len(u.ClothingItems))
		for i := range u.ClothingItems {
			out.ClothingItems[i] = u.ClothingItems[i].Clone()
		}
	}
	if u.Outfits != nil {
		out.Outfits = make([]Outfit, len(u.Outfits))
		for i := range u.Outfits {
			out.Outfits[i] = u.Outfits[i].Clone()
		}
	}
	return &out
}
