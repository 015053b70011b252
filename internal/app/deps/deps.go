package deps

import (
	"context"
	"sync"
	"taskflow/internal/config"
	dl "taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/meeting"
	drl "taskflow/internal/core/domain/rate_limiter"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	duow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	dbmeeting "taskflow/internal/db/meeting"
	dbtask "taskflow/internal/db/task"
	uow "taskflow/internal/db/unit_of_work"
	dbuser "taskflow/internal/db/user"
	"taskflow/internal/implementations/email"
	"taskflow/internal/implementations/logging"
	passwordhasher "taskflow/internal/implementations/password_hasher"
	ratelimiter "taskflow/internal/implementations/rate_limiter"
	reminderscheduler "taskflow/internal/implementations/reminder_scheduler"
	remindersender "taskflow/internal/implementations/reminder_sender"
	"taskflow/internal/implementations/session"
	"taskflow/internal/rabbitmq"
	reminderdue "taskflow/internal/rabbitmq/publishers/reminder_due"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserRepository    user.UserRepository
	SessionRepository user.SessionRepository
	TaskRepository    task.TaskRepository
	MeetingRepository meeting.MeetingRepository

	RateLimiter drl.RateLimiter

	EmailSender           *email.Sender
	InvitationSender      meeting.InvitationSender
	SessionTokenGenerator user.SessionTokenGenerator
	PasswordHasher        user.PasswordHasher

	// ReminderScheduler arms in-process timers; when one fires the due
	// reminder is published to RabbitMQ and delivered by the consumer.
	ReminderScheduler *reminderscheduler.Timers
	ReminderSender    reminder.Sender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.TaskRepository = dbtask.NewPgxRepository(deps.DB)
	deps.MeetingRepository = dbmeeting.NewPgxRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.EmailSender = email.NewSender(deps.AwsConfig, deps.Config.AwsEmailSender)
	deps.InvitationSender = deps.EmailSender
	deps.SessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	closeReminderScheduler := deps.initReminderScheduler()

	deps.ReminderSender = remindersender.New(
		deps.Logger,
		deps.UserRepository,
		deps.EmailSender,
		remindersender.NewInternal(deps.SseServer),
	)

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeReminderScheduler,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initReminderScheduler() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqReminderExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqReminderDueQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueBind(
		deps.Config.RabbitmqReminderDueQueue,
		deps.Config.RabbitmqReminderDueQueue,
		deps.Config.RabbitmqReminderExchange,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.ReminderScheduler = reminderscheduler.NewTimers(
		deps.Logger,
		reminderdue.NewRabbitMQ(
			deps.Logger,
			rabbitmqChannel,
			deps.Config.RabbitmqReminderExchange,
			deps.Config.RabbitmqReminderDueQueue,
		),
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down reminder scheduler.")
		deps.ReminderScheduler.Stop()
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Reminder scheduler shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}
