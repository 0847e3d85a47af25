// Package cascade bir varlık silinirken yapılması gereken bağımlı
// temizlik adımlarını sıralı ve loglanabilir şekilde çalıştırır.
// Adımlar çağıranın transaction'ı içinde koşar; bir adım hata verirse
// zincir durur ve transaction geri alınır. Böylece yarım kalan bir
// cascade sessizce yutulmaz, hangi adımda durduğu logdan okunur.
package cascade

import (
	"fmt"

	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Step tek bir temizlik adımıdır.
type Step struct {
	Name string
	Run  func(tx *gorm.DB) error
}

// Run adımları sırayla çalıştırır. entity/id loglarda zinciri tanımlar.
func Run(tx *gorm.DB, entity string, id uint, steps []Step) error {
	for i, step := range steps {
		configslog.SLog.Debugf("Cascade adımı çalışıyor: %s[%d] %d/%d: %s", entity, id, i+1, len(steps), step.Name)
		if err := step.Run(tx); err != nil {
			configslog.Log.Error("Cascade adımı başarısız, zincir durduruluyor",
				zap.String("entity", entity),
				zap.Uint("id", id),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			return fmt.Errorf("cascade adımı '%s' başarısız: %w", step.Name, err)
		}
	}
	configslog.SLog.Infof("Cascade tamamlandı: %s[%d], %d adım.", entity, id, len(steps))
	return nil
}
