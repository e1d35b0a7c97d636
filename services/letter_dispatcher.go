package services

import (
	"context"
	"log"
	"time"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg/email"
	"github.com/Danchouvzv/nevsluh/repository"
)

// LetterDispatcher, teslim zamanı gelmiş mektupları email ile gönderen
// background worker.
//
// Orijinal üründe bu bileşen hiç yoktu — mektuplar pending durumda sonsuza
// kadar beklerdi. Burada teslimat açık bir sözleşmeyle tanımlıdır:
//
//   - Her tick'te ListDue ile vadesi gelmiş pending mektuplar (bounded batch)
//     çekilir ve sırayla gönderilir.
//   - Başarılı gönderim → status=delivered (terminal).
//   - Başarısız gönderim → attempts+1 kaydedilir, mektup pending KALIR;
//     bir sonraki tick tekrar dener. Retry aralığı = tick aralığı.
//   - attempts maxAttempts'a ulaştıysa → status=failed (terminal),
//     son hata last_error'da saklanır.
//
// Tek instance varsayımı: dispatcher claim/lock mekanizması kullanmaz.
// SQLite zaten tek yazarlıdır ve deployment tek process'tir — iki dispatcher
// çalıştırılırsa mektuplar çift gönderilebilir.
type LetterDispatcher struct {
	letterRepo  repository.LetterRepository
	sender      email.EmailSender
	interval    time.Duration
	batchSize   int
	maxAttempts int

	stop    chan struct{}
	stopped chan struct{}
}

// NewLetterDispatcher, constructor.
//
// interval: tarama sıklığı (ör: 1 dakika) — aynı zamanda retry aralığıdır.
// batchSize: tick başına işlenecek maksimum mektup.
// maxAttempts: failed'a düşmeden önceki toplam deneme sayısı.
func NewLetterDispatcher(
	letterRepo repository.LetterRepository,
	sender email.EmailSender,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
) *LetterDispatcher {
	return &LetterDispatcher{
		letterRepo:  letterRepo,
		sender:      sender,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

// Run, dispatcher loop'unu çalıştırır. main.go'da `go dispatcher.Run()` ile
// başlatılır; Shutdown() çağrılana kadar döner.
//
// İlk tick hemen atılır — server restart'ında birikmiş mektuplar
// interval kadar beklemez.
func (d *LetterDispatcher) Run() {
	defer close(d.stopped)

	log.Printf("[dispatcher] started (interval=%s, batch=%d, max attempts=%d)",
		d.interval, d.batchSize, d.maxAttempts)

	d.tick()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.tick()
		case <-d.stop:
			log.Println("[dispatcher] stopped")
			return
		}
	}
}

// Shutdown, loop'u durdurur ve devam eden tick'in bitmesini bekler.
func (d *LetterDispatcher) Shutdown() {
	close(d.stop)
	<-d.stopped
}

// tick, tek bir tarama turu yapar. Her mektup bağımsız işlenir —
// birinin hatası diğerlerinin teslimini engellemez.
func (d *LetterDispatcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), d.interval)
	defer cancel()

	letters, err := d.letterRepo.ListDue(ctx, time.Now(), d.batchSize)
	if err != nil {
		log.Printf("[dispatcher] failed to list due letters: %v", err)
		return
	}

	for i := range letters {
		d.deliver(ctx, &letters[i])
	}
}

// deliver, tek bir mektubu gönderir ve durumunu günceller.
func (d *LetterDispatcher) deliver(ctx context.Context, letter *models.FutureLetter) {
	if err := d.sender.SendFutureLetter(ctx, letter); err != nil {
		// Deneme sayısı bu hatayla maxAttempts'a ulaşıyorsa mektup kapanır.
		if letter.Attempts+1 >= d.maxAttempts {
			log.Printf("[dispatcher] letter %s failed permanently after %d attempts: %v",
				letter.ID, letter.Attempts+1, err)
			if mErr := d.letterRepo.MarkFailed(ctx, letter.ID, err.Error()); mErr != nil {
				log.Printf("[dispatcher] failed to mark letter %s failed: %v", letter.ID, mErr)
			}
			return
		}

		log.Printf("[dispatcher] letter %s send failed (attempt %d/%d), will retry: %v",
			letter.ID, letter.Attempts+1, d.maxAttempts, err)
		if rErr := d.letterRepo.RecordAttempt(ctx, letter.ID, err.Error()); rErr != nil {
			log.Printf("[dispatcher] failed to record attempt for letter %s: %v", letter.ID, rErr)
		}
		return
	}

	if err := d.letterRepo.MarkDelivered(ctx, letter.ID); err != nil {
		// Gönderildi ama delivered işaretlenemedi — bir sonraki tick mektubu
		// tekrar görür ve İKİNCİ KEZ gönderir. At-least-once teslimat:
		// işaretleme hatası çok nadirdir ve çift email, kayıp email'den iyidir.
		log.Printf("[dispatcher] letter %s sent but not marked delivered: %v", letter.ID, err)
		return
	}

	log.Printf("[dispatcher] letter %s delivered to %s", letter.ID, letter.Email)
}
