package notify

import (
	"errors"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/jambohub/jambohub/internal/models"
	"gorm.io/gorm"
)

// VAPIDConfig is the server's Web Push identity. It is constructed once at
// startup and injected wherever push sending or subscribing needs it.
type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
}

// LoadOrGenerateVAPID returns the persisted key pair, generating and storing
// one on first boot. Existing subscriptions stay valid across restarts only
// because the pair survives in the store.
func LoadOrGenerateVAPID(gdb *gorm.DB, subscriber string) (VAPIDConfig, error) {
	var key models.VapidKey

	err := gdb.First(&key).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		privateKey, publicKey, genErr := webpush.GenerateVAPIDKeys()

		if genErr != nil {
			return VAPIDConfig{}, genErr
		}

		key = models.VapidKey{PublicKey: publicKey, PrivateKey: privateKey}

		if createErr := gdb.Create(&key).Error; createErr != nil {
			return VAPIDConfig{}, createErr
		}
	} else if err != nil {
		return VAPIDConfig{}, err
	}

	return VAPIDConfig{
		PublicKey:  key.PublicKey,
		PrivateKey: key.PrivateKey,
		Subscriber: subscriber,
	}, nil
}
