package seed

import (
	"fmt"
	"math/rand"
	"time"

	"recipebox/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var tagNames = []string{
	"Vegan", "Vegetarian", "Dessert", "Breakfast", "Lunch", "Dinner",
	"Quick", "Comfort Food", "Spicy", "Gluten Free", "Low Carb", "Holiday",
}

var ingredientNames = []string{
	"Salt", "Pepper", "Olive Oil", "Garlic", "Onion", "Butter", "Flour",
	"Sugar", "Eggs", "Milk", "Tomatoes", "Basil", "Chicken", "Rice",
	"Lemon", "Ginger", "Soy Sauce", "Paprika", "Cumin", "Parsley",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Email:    gofakeit.Email(),
		Name:     gofakeit.Name(),
		Password: string(hashed),
		IsActive: true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRecipe constructs and persists a sample recipe owned by user, with a
// few tags and ingredients attached.
func (f *Factory) CreateRecipe(user *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       fmt.Sprintf("%s %s", gofakeit.Adjective(), gofakeit.Dinner()),
		TimeMinutes: gofakeit.Number(5, 180),
		Price:       float64(gofakeit.Number(200, 5000)) / 100,
		Link:        gofakeit.URL(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Tags:        f.pickTags(user.ID, f.r.Intn(3)+1),
		Ingredients: f.pickIngredients(user.ID, f.r.Intn(5)+2),
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.r.Intn(90)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	for _, override := range overrides {
		override(recipe)
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (f *Factory) pickTags(userID uint, n int) []models.Tag {
	picked := f.r.Perm(len(tagNames))[:n]
	tags := make([]models.Tag, 0, n)
	for _, idx := range picked {
		var tag models.Tag
		if err := f.db.Where(models.Tag{UserID: userID, Name: tagNames[idx]}).
			FirstOrCreate(&tag).Error; err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func (f *Factory) pickIngredients(userID uint, n int) []models.Ingredient {
	picked := f.r.Perm(len(ingredientNames))[:n]
	ingredients := make([]models.Ingredient, 0, n)
	for _, idx := range picked {
		var ing models.Ingredient
		if err := f.db.Where(models.Ingredient{UserID: userID, Name: ingredientNames[idx]}).
			FirstOrCreate(&ing).Error; err != nil {
			continue
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}
