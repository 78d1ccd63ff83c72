package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockTx создаёт минимальный мок для передачи в BeforeSave
// В реальности BeforeSave не использует tx напрямую, но сигнатура требует его
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: создаём пользователя с открытым паролем
	plainPassword := "mySecretPassword123"
	user := &User{
		Username: "student@example.com",
		FullName: "Test Student",
		Password: plainPassword,
	}

	// Act: вызываем BeforeSave
	err := user.BeforeSave(mockTx)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.True(t, len(user.Password) > 50, "Хеш bcrypt должен быть длиннее 50 символов")

	// Проверяем, что пароль действительно bcrypt-хеш
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "Хеш должен соответствовать исходному паролю")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange: создаём пользователя с уже хешированным паролем
	plainPassword := "alreadyHashed"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "student@example.com",
		FullName: "Test Student",
		Password: string(hashedPassword),
	}
	originalHash := user.Password

	// Act: вызываем BeforeSave
	err = user.BeforeSave(mockTx)

	// Assert: пароль не должен измениться (нет двойного хеширования)
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.Equal(t, originalHash, user.Password, "Уже хешированный пароль не должен изменяться")
}

func TestUser_CheckPassword_CorrectPassword(t *testing.T) {
	// Arrange: создаём пользователя и хешируем его пароль
	plainPassword := "correctPassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "student@example.com",
		Password: string(hashedPassword),
	}

	// Act & Assert: правильный пароль должен вернуть true
	assert.True(t, user.CheckPassword(plainPassword), "CheckPassword должен вернуть true для правильного пароля")
}

func TestUser_CheckPassword_IncorrectPassword(t *testing.T) {
	// Arrange
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correctPassword123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "student@example.com",
		Password: string(hashedPassword),
	}

	// Act & Assert: неправильный и пустой пароли не должны совпадать
	assert.False(t, user.CheckPassword("wrongPassword456"), "CheckPassword должен вернуть false для неправильного пароля")
	assert.False(t, user.CheckPassword(""), "CheckPassword должен вернуть false для пустого пароля")
}

func TestUser_TableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName(), "TableName должен возвращать 'users'")
}
